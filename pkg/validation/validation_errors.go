package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the names clients know them by
var FieldLabels = map[string]string{
	"Type":   "type",
	"Format": "format",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into a single response message.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Missing %s parameter", label)
	case "oneof":
		return fmt.Sprintf("Invalid %s %q. Supported values: %s", label, fmt.Sprint(e.Value()), formatOneOfOptions(e.Param()))
	default:
		return fmt.Sprintf("Invalid %s %q (%s)", label, fmt.Sprint(e.Value()), e.Tag())
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

// formatOneOfOptions turns "monthly by-job" into "monthly, by-job"
func formatOneOfOptions(param string) string {
	return strings.Join(strings.Fields(param), ", ")
}
