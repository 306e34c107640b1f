package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// employeeId -> Employee Id, leave_casual -> Leave Casual
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

// MapValidationError mengubah error binding gin menjadi pesan yang bisa dibaca manusia.
// Hanya error validasi pertama yang dilaporkan.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		case "gt", "min":
			return New(
				CodeInvalidInput,
				fmt.Sprintf("%s must be greater than %s", humanReadableField, lowerBound(e)),
				http.StatusBadRequest,
			)
		case "oneof":
			return New(
				CodeInvalidInput,
				fmt.Sprintf("%s must be one of [%s]", humanReadableField, e.Param()),
				http.StatusBadRequest,
			)
		default:
			return InvalidField(humanReadableField)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}

func lowerBound(e validator.FieldError) string {
	if e.Tag() == "min" {
		// min=1 berarti harus > 0
		var n int
		if _, err := fmt.Sscanf(e.Param(), "%d", &n); err == nil {
			return fmt.Sprintf("%d", n-1)
		}
	}
	return e.Param()
}
