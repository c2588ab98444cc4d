package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// FormatValidationErrors turns validator errors into per-field messages for
// the form views.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := fieldName(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("El campo %s es obligatorio.", field)
		case "max":
			errorMessages[field] = fmt.Sprintf("El campo %s no debe exceder %s caracteres.", field, err.Param())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("El campo %s debe ser un número.", field)
		case "min":
			errorMessages[field] = fmt.Sprintf("El campo %s debe ser como mínimo %s.", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("El campo %s no es válido.", field)
		}
	}
	return errorMessages
}

func fieldName(structField string) string {
	switch structField {
	case "CategoryID":
		return "category_id"
	default:
		return strings.ToLower(structField)
	}
}

// GetIDParam reads the {id} route variable as uint.
func GetIDParam(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// GetPageParam reads ?page= and defaults to 1.
func GetPageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
