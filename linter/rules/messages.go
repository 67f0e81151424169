package rules

import (
	"strings"

	"github.com/addonreview/cachelint/validation"
	"golang.org/x/text/language"
)

// Message data keys.
const (
	DataMethod      = "method"
	DataURL         = "url"
	DataHost        = "host"
	DataSegment     = "segment"
	DataConstructor = "constructor"
	DataDomains     = "domains"
)

// templates holds the message template per language and rule. Placeholders are data keys in braces.
var templates = map[language.Tag]map[string]string{
	language.English: {
		validation.RuleMissingCacheSegment:      "Missing {segment} in {method} call to {host}",
		validation.RuleRawTransportConstruction: "{constructor} detected - verify it uses {segment} for requests to {domains}",
	},
	language.Czech: {
		validation.RuleMissingCacheSegment:      "Chybí {segment} ve volání {method} na {host}",
		validation.RuleRawTransportConstruction: "{constructor} detekován - zkontrolovat, zda používá {segment} pro požadavky na {domains}",
	},
}

var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.Czech})

// SupportedLanguages returns the languages messages can be rendered in.
func SupportedLanguages() []language.Tag {
	return []language.Tag{language.English, language.Czech}
}

// MatchLanguage returns the supported language closest to tag.
func MatchLanguage(tag language.Tag) language.Tag {
	_, index, _ := languageMatcher.Match(tag)
	return SupportedLanguages()[index]
}

// MessageFor renders the English message of ruleID with data.
func MessageFor(ruleID string, data map[string]string) string {
	return LocalizedMessageFor(language.English, ruleID, data)
}

// LocalizedMessageFor renders the message of ruleID in the supported language closest to tag.
// Unknown rules render as their ID.
func LocalizedMessageFor(tag language.Tag, ruleID string, data map[string]string) string {
	tmpl, ok := templates[MatchLanguage(tag)][ruleID]
	if !ok {
		return ruleID
	}

	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return strings.NewReplacer(pairs...).Replace(tmpl)
}
