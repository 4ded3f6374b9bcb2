package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/providervault/ai-service/internal/domain/entities"
	apperrors "github.com/providervault/ai-service/pkg/errors"
)

// The parser turns raw model text into the typed result variants. Every
// required field is validated here; a miss is a MALFORMED_RESPONSE
// naming the variant and retaining the raw text. Nothing is ever
// defaulted silently.

// SymptomFields is the delimiter-parsed triage output before urgency
// classification. UrgencyRaw is the model's own string; the classifier
// owns mapping and clamping it.
type SymptomFields struct {
	Specialties     []string
	Reasoning       string
	UrgencyRaw      string
	EmergencyAction string
}

// SearchIntent is the parsed query understanding output.
type SearchIntent struct {
	Intent      string
	KeyTerms    []string
	Specialties []string
}

// ParseDescription validates the free-prose specialty description.
func ParseDescription(specialty, raw string) (*entities.SpecialtyDescription, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return nil, apperrors.NewMalformedResponseError("specialty_description", "empty description", raw)
	}
	return &entities.SpecialtyDescription{
		Specialty:   specialty,
		Description: description,
	}, nil
}

// ParseRelatedSpecialties extracts "Name: reason" entries from a
// numbered or bulleted list, in order, capped at count. Fewer entries
// than requested is fine; none at all is a parse failure.
func ParseRelatedSpecialties(specialty, raw string, count int) (*entities.RelatedSpecialties, error) {
	var related []entities.RelatedSpecialty

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isListLine(line) {
			continue
		}
		clean := strings.TrimLeft(line, "0123456789.-) ")
		name, reason, ok := strings.Cut(clean, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		reason = strings.TrimSpace(reason)
		if name == "" {
			continue
		}
		related = append(related, entities.RelatedSpecialty{
			Specialty: name,
			Reason:    reason,
		})
	}

	if len(related) == 0 {
		return nil, apperrors.NewMalformedResponseError("related_specialties", "no specialty suggestions found", raw)
	}
	if len(related) > count {
		related = related[:count]
	}

	return &entities.RelatedSpecialties{
		Specialty: specialty,
		Related:   related,
	}, nil
}

var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent)`)

// ParseDistributionAnalysis validates the analysis prose and captures
// any percentage figures the model cited. Callouts are opportunistic;
// prose with no numbers is still a valid analysis.
func ParseDistributionAnalysis(specialty string, providerCount int, raw string) (*entities.DistributionAnalysis, error) {
	analysis := strings.TrimSpace(raw)
	if analysis == "" {
		return nil, apperrors.NewMalformedResponseError("distribution_analysis", "empty analysis", raw)
	}

	var callouts []entities.NumericCallout
	for _, sentence := range strings.Split(analysis, ". ") {
		for _, match := range percentPattern.FindAllStringSubmatch(sentence, -1) {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			callouts = append(callouts, entities.NumericCallout{
				Value:   value,
				Percent: true,
				Context: strings.TrimSpace(sentence),
			})
		}
	}

	return &entities.DistributionAnalysis{
		Specialty:     specialty,
		ProviderCount: providerCount,
		Analysis:      analysis,
		Callouts:      callouts,
	}, nil
}

// ParseSymptomFields splits the triage output on its delimiter grammar.
// SPECIALTIES must name at least one specialty and REASONING must be
// present; EMERGENCY_ACTION of "N/A" means no directive. Field text may
// continue across lines until the next delimiter.
func ParseSymptomFields(raw string) (*SymptomFields, error) {
	fields := splitDelimited(raw, []string{"SPECIALTIES:", "REASONING:", "URGENCY:", "EMERGENCY_ACTION:"})

	specialties := splitCommaList(fields["SPECIALTIES:"])
	if len(specialties) == 0 {
		return nil, apperrors.NewMalformedResponseError("symptom_recommendation", "missing recommended specialties", raw)
	}

	reasoning := strings.TrimSpace(fields["REASONING:"])
	if reasoning == "" {
		return nil, apperrors.NewMalformedResponseError("symptom_recommendation", "missing reasoning", raw)
	}

	action := strings.TrimSpace(fields["EMERGENCY_ACTION:"])
	if strings.EqualFold(action, "N/A") {
		action = ""
	}

	return &SymptomFields{
		Specialties:     specialties,
		Reasoning:       reasoning,
		UrgencyRaw:      strings.TrimSpace(fields["URGENCY:"]),
		EmergencyAction: action,
	}, nil
}

// ParseSearchIntent splits the query understanding output. The
// SPECIALTIES field must name at least one specialty; intent and terms
// may be missing without failing the parse.
func ParseSearchIntent(raw string) (*SearchIntent, error) {
	fields := splitDelimited(raw, []string{"INTENT:", "KEY_TERMS:", "SPECIALTIES:"})

	specialties := splitCommaList(fields["SPECIALTIES:"])
	if len(specialties) == 0 {
		return nil, apperrors.NewMalformedResponseError("search_result", "missing recommended specialties", raw)
	}

	return &SearchIntent{
		Intent:      strings.TrimSpace(fields["INTENT:"]),
		KeyTerms:    splitCommaList(fields["KEY_TERMS:"]),
		Specialties: specialties,
	}, nil
}

// ParseFollowUps extracts suggested questions from a bulleted list.
// Lenient: a model that formats badly just yields no suggestions.
func ParseFollowUps(raw string, max int) []string {
	var suggestions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isListLine(line) {
			continue
		}
		suggestion := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-*•) "))
		if suggestion == "" {
			continue
		}
		suggestions = append(suggestions, suggestion)
		if len(suggestions) == max {
			break
		}
	}
	return suggestions
}

// splitDelimited assigns each line of text to the most recent delimiter
// token seen, so multi-line field values accumulate.
func splitDelimited(raw string, tokens []string) map[string]string {
	fields := make(map[string]string, len(tokens))
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		matched := false
		for _, token := range tokens {
			if strings.HasPrefix(trimmed, token) {
				current = token
				fields[token] = strings.TrimSpace(strings.TrimPrefix(trimmed, token))
				matched = true
				break
			}
		}
		if !matched && current != "" && trimmed != "" {
			fields[current] = strings.TrimSpace(fields[current] + " " + trimmed)
		}
	}

	return fields
}

func splitCommaList(text string) []string {
	var items []string
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func isListLine(line string) bool {
	if line == "" {
		return false
	}
	first := line[0]
	return (first >= '0' && first <= '9') || first == '-' || first == '*' ||
		strings.HasPrefix(line, "•")
}
