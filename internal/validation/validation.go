// Package validation applies declarative per-endpoint rule tables to decoded
// JSON payloads, producing either a normalized payload or a list of field
// violations. No mutation may proceed while violations exist.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/avelar/taskhub-be/internal/apperr"
)

// Kind is the expected JSON type of a field.
type Kind int

const (
	String Kind = iota
	Bool
)

// Format names a recognized string format.
type Format int

const (
	None Format = iota
	Email
	DateTime
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule declares the constraints for one payload field. Evaluation order is
// required-ness, then kind/format, then length bounds, then pattern and enum;
// a field stops at its first violation.
type Rule struct {
	Label      string
	Required   bool
	Kind       Kind
	MinLen     int
	MaxLen     int
	Enum       []string
	Format     Format
	Pattern    *regexp.Regexp
	PatternMsg string
	NoTrim     bool
}

// RuleSet maps payload field names to their rules.
type RuleSet map[string]Rule

// Apply checks payload against the rule set. It returns the normalized
// payload (strings trimmed, emails lowercased, datetimes parsed to time.Time)
// or the violations collected across all fields. Absent optional fields are
// skipped entirely; unknown payload fields are dropped.
func (rs RuleSet) Apply(payload map[string]any) (map[string]any, []apperr.FieldError) {
	normalized := make(map[string]any, len(rs))
	var violations []apperr.FieldError

	fail := func(field, message string) {
		violations = append(violations, apperr.FieldError{Field: field, Message: message})
	}

	for field, rule := range rs {
		raw, present := payload[field]
		if !present {
			if rule.Required {
				fail(field, rule.Label+" is required")
			}
			continue
		}

		switch rule.Kind {
		case Bool:
			b, ok := raw.(bool)
			if !ok {
				fail(field, rule.Label+" must be a boolean value")
				continue
			}
			normalized[field] = b

		case String:
			s, ok := raw.(string)
			if !ok {
				fail(field, rule.Label+" must be a string")
				continue
			}
			if !rule.NoTrim {
				s = strings.TrimSpace(s)
			}
			if rule.Required && s == "" {
				fail(field, rule.Label+" is required")
				continue
			}
			if msg := rule.checkString(s); msg != "" {
				fail(field, msg)
				continue
			}
			switch rule.Format {
			case Email:
				normalized[field] = strings.ToLower(s)
			case DateTime:
				t, err := parseDateTime(s)
				if err != nil {
					fail(field, rule.Label+" must be a valid date")
					continue
				}
				normalized[field] = t
			default:
				normalized[field] = s
			}
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool { return violations[i].Field < violations[j].Field })
		return nil, violations
	}
	return normalized, nil
}

func (r Rule) checkString(s string) string {
	if r.Format == Email && !emailRe.MatchString(s) {
		return "Please enter a valid email address"
	}
	n := len([]rune(s))
	switch {
	case r.MinLen > 0 && r.MaxLen > 0 && (n < r.MinLen || n > r.MaxLen):
		return fmt.Sprintf("%s must be between %d and %d characters", r.Label, r.MinLen, r.MaxLen)
	case r.MinLen > 0 && n < r.MinLen:
		return fmt.Sprintf("%s must be at least %d characters long", r.Label, r.MinLen)
	case r.MaxLen > 0 && n > r.MaxLen:
		return fmt.Sprintf("%s cannot exceed %d characters", r.Label, r.MaxLen)
	}
	if r.Pattern != nil && !r.Pattern.MatchString(s) {
		return r.PatternMsg
	}
	if len(r.Enum) > 0 {
		for _, v := range r.Enum {
			if s == v {
				return ""
			}
		}
		return fmt.Sprintf("%s must be %s", r.Label, joinEnum(r.Enum))
	}
	return ""
}

func joinEnum(values []string) string {
	if len(values) == 1 {
		return values[0]
	}
	return strings.Join(values[:len(values)-1], ", ") + ", or " + values[len(values)-1]
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
