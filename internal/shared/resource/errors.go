package resource

import (
	"errors"
	"net/http"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/validation"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no entity has the requested id.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalid is wrapped by validation failures.
	ErrInvalid = validation.ErrInvalid
)

// ErrorMappings translates resource and store errors to HTTP responses.
// A not found resource answers with an empty body.
func ErrorMappings() []httputil.ErrorMapping {
	return []httputil.ErrorMapping{
		{Error: ErrNotFound, Status: http.StatusNotFound},
		{Error: ErrInvalid, Status: http.StatusBadRequest, Detailed: true},
		{Error: gorm.ErrDuplicatedKey, Status: http.StatusConflict, Message: "resource already exists"},
		{Error: gorm.ErrForeignKeyViolated, Status: http.StatusConflict, Message: "resource is referenced by or references a missing entity"},
	}
}
