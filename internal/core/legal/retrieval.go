// Package legal selects a marina document for a question and retrieves
// the articles that answer it.
package legal

import (
	"regexp"
	"strings"
	"unicode"
)

// Document names known to the document store.
const (
	DocNavigation  = "colregs_and_straits.md"
	DocGuide       = "turkish_maritime_guide.md"
	DocPrivacy     = "wim_kvkk.md"
	DocRegulations = "wim_contract_regulations.md"
)

// GeneralSection labels text that precedes the first article heading.
const GeneralSection = "General Information"

// Deflection is returned for questions about competing marinas.
const Deflection = "Ada Marina specializes in the regulations of West Istanbul Marina. " +
	"KVKK/GDPR is a legal requirement in Turkey. " +
	"For inquiries about other institutions, please contact them directly."

var competitors = []string{"setur"}

// IsCompetitorQuery reports whether the question concerns another marina operator.
func IsCompetitorQuery(query string) bool {
	q := strings.ToLower(query)
	for _, c := range competitors {
		if strings.Contains(q, c) {
			return true
		}
	}
	return false
}

var documentRules = []struct {
	doc      string
	keywords []string
}{
	{DocNavigation, []string{"colregs", "rule", "navigation", "collision", "right of way", "look-out"}},
	{DocGuide, []string{"guide", "equipment", "document", "strait", "tss"}},
	{DocPrivacy, []string{"kvkk", "gdpr", "privacy", "personal data", "data"}},
}

// SelectDocument picks the document for a question; regulations are the default.
func SelectDocument(query string) string {
	q := strings.ToLower(query)
	for _, rule := range documentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.doc
			}
		}
	}
	return DocRegulations
}

// Section is one labeled article of a document.
type Section struct {
	Label string
	Text  string
	Score int
}

var headingPattern = regexp.MustCompile(
	`(?im)^[#*\s]*(?:article|rule|section|part|madde)\s+([A-Z]?\.?\d+(?:\.\d+)*)\.?`)

// Split cuts a document at article/rule headings.
func Split(doc string) []Section {
	locs := headingPattern.FindAllStringSubmatchIndex(doc, -1)
	var sections []Section

	head := doc
	if len(locs) > 0 {
		head = doc[:locs[0][0]]
	}
	if strings.TrimSpace(head) != "" {
		sections = append(sections, Section{Label: GeneralSection, Text: strings.TrimSpace(head)})
	}

	for i, loc := range locs {
		end := len(doc)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, Section{
			Label: doc[loc[2]:loc[3]],
			Text:  strings.TrimSpace(doc[loc[0]:end]),
		})
	}
	return sections
}

// Score is 1 when the section contains the whole query or shares any word
// longer than three characters with it, otherwise 0.
func Score(section, query string) int {
	s := strings.ToLower(section)
	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" && strings.Contains(s, q) {
		return 1
	}
	words := make(map[string]bool)
	for _, w := range longWords(s) {
		words[w] = true
	}
	for _, w := range longWords(q) {
		if words[w] {
			return 1
		}
	}
	return 0
}

// Retrieve returns up to limit scoring sections in document order.
func Retrieve(doc, query string, limit int) []Section {
	var out []Section
	for _, sec := range Split(doc) {
		if sec.Score = Score(sec.Text, query); sec.Score > 0 {
			out = append(out, sec)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func longWords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 3 {
			out = append(out, f)
		}
	}
	return out
}
