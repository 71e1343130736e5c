package validation_test

import (
	"errors"
	"testing"

	"go-hr-dashboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type chartQuery struct {
	Type string `validate:"oneof=monthly by-job"`
}

func TestOneOfMessageNamesValueAndOptions(t *testing.T) {
	err := validator.New().Struct(chartQuery{Type: "weekly"})

	msg := validation.Message(err)
	assert.Contains(t, msg, `"weekly"`)
	assert.Contains(t, msg, "monthly, by-job")
	assert.Contains(t, msg, "type")
}

func TestOneOfRejectsEmptyValue(t *testing.T) {
	err := validator.New().Struct(chartQuery{})

	assert.Error(t, err)
	assert.Contains(t, validation.Message(err), `""`)
}

func TestNonValidationErrorPassesThrough(t *testing.T) {
	assert.Equal(t, []string{"boom"}, validation.FormatValidationErrors(errors.New("boom")))
}
