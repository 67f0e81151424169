package format

import (
	"encoding/json"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonOutput struct {
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

type jsonResult struct {
	File     string            `json:"file,omitempty"`
	Rule     string            `json:"rule"`
	Category string            `json:"category"`
	Severity string            `json:"severity"`
	Message  string            `json:"message"`
	Location *jsonLocation     `json:"location,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
}

type jsonLocation struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"endLine,omitempty"`
	EndColumn int `json:"endColumn,omitempty"`
}

type jsonSummary struct {
	Total           int `json:"total"`
	Blockers        int `json:"blockers"`
	Recommendations int `json:"recommendations"`
	Diagnostics     int `json:"diagnostics"`
}

func (f *JSONFormatter) Format(results []error) (string, error) {
	entries, c := toEntries(results)

	output := jsonOutput{
		Results: make([]jsonResult, 0, len(entries)),
		Summary: jsonSummary{
			Total:           c.total(),
			Blockers:        c.blockers,
			Recommendations: c.recommends,
			Diagnostics:     c.diagnostics + c.internal,
		},
	}

	for _, e := range entries {
		result := jsonResult{
			File:     e.file,
			Rule:     e.rule,
			Category: e.category,
			Severity: e.severity,
			Message:  e.message,
			Data:     e.data,
		}
		if e.line > 0 {
			result.Location = &jsonLocation{
				Line:      e.line,
				Column:    e.column,
				EndLine:   e.endLine,
				EndColumn: e.endColumn,
			}
		}
		output.Results = append(output.Results, result)
	}

	bytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
