package domain

import (
	"fmt"
	"strings"
)

// ValidationResult collects problems found in a sample sheet.
// Errors block computation; warnings do not.
type ValidationResult struct {
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Summary  map[string]any `json:"summary,omitempty"`
}

// IsValid returns true when there are no blocking errors.
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError records a blocking error.
func (v *ValidationResult) AddError(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// AddWarning records a non-blocking warning.
func (v *ValidationResult) AddWarning(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Report renders the result as plain text.
func (v *ValidationResult) Report() string {
	var b strings.Builder
	if v.IsValid() {
		b.WriteString("Validation passed")
	} else {
		fmt.Fprintf(&b, "Validation failed with %d error(s)", len(v.Errors))
	}
	if len(v.Warnings) > 0 {
		fmt.Fprintf(&b, " and %d warning(s)", len(v.Warnings))
	}
	b.WriteString("\n")
	for _, e := range v.Errors {
		fmt.Fprintf(&b, "  ERROR: %s\n", e)
	}
	for _, w := range v.Warnings {
		fmt.Fprintf(&b, "  WARNING: %s\n", w)
	}
	return b.String()
}
