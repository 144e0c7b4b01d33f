package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name      string  `json:"name" validate:"required,max=5"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Guests    int     `json:"guestNumber" validate:"min=1"`
	OrderDate string  `json:"orderDate" validate:"omitempty,datetime=2006-01-02"`
	Allergy   *string `json:"allergy" validate:"omitempty,max=3"`
}

func TestStructAcceptsValidValue(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "Quai", Guests: 2, OrderDate: "2024-05-01"}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	long := "shellfish"
	err := Struct(sample{Name: "", Email: "nope", Guests: 0, OrderDate: "01/05/2024", Allergy: &long})

	require.ErrorIs(t, err, ErrInvalid)
	msg := err.Error()
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "guestNumber must be at least 1")
	assert.Contains(t, msg, "orderDate must match the layout 2006-01-02")
	assert.Contains(t, msg, "allergy must be at most 3 characters")
}
