package format

import (
	"encoding/json"

	"github.com/addonreview/cachelint/linter/rules"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	toolName     = "cachelint"
	toolURI      = "https://github.com/addonreview/cachelint"
)

type sarifReport struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifText         `json:"shortDescription"`
	FullDescription  *sarifText        `json:"fullDescription,omitempty"`
	HelpURI          string            `json:"helpUri,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

// SARIFFormatter renders results as a SARIF 2.1.0 log for code scanning tools.
type SARIFFormatter struct{}

func NewSARIFFormatter() *SARIFFormatter {
	return &SARIFFormatter{}
}

func (f *SARIFFormatter) Format(results []error) (string, error) {
	entries, _ := toEntries(results)

	driverRules := make([]sarifRule, 0, len(rules.Default()))
	for _, rule := range rules.Default() {
		driverRules = append(driverRules, sarifRule{
			ID:               rule.ID(),
			ShortDescription: sarifText{Text: rule.Summary()},
			FullDescription:  &sarifText{Text: rule.Description()},
			HelpURI:          rule.Link(),
			Properties: map[string]string{
				"category": rule.Category(),
				"severity": rule.DefaultSeverity().String(),
			},
		})
	}

	sarifResults := make([]sarifResult, 0, len(entries))
	for _, e := range entries {
		result := sarifResult{
			RuleID:  e.rule,
			Level:   sarifLevel(e),
			Message: sarifText{Text: e.message},
		}

		if e.file != "" {
			location := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: e.file},
				},
			}
			if e.line > 0 {
				location.PhysicalLocation.Region = &sarifRegion{
					StartLine:   e.line,
					StartColumn: e.column,
					EndLine:     e.endLine,
					EndColumn:   e.endColumn,
				}
			}
			result.Locations = []sarifLocation{location}
		}

		sarifResults = append(sarifResults, result)
	}

	report := sarifReport{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           toolName,
						InformationURI: toolURI,
						Rules:          driverRules,
					},
				},
				Results: sarifResults,
			},
		},
	}

	bytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func sarifLevel(e entry) string {
	switch {
	case e.severity == "blocker" || e.kind == kindInternal:
		return "error"
	case e.severity == "recommend":
		return "warning"
	default:
		return "note"
	}
}
