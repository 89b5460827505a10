package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
}

var validate = validator.New()

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, &ErrorResponse{
				FailedField: err.Field(),
				Tag:         err.Tag(),
			})
		}
	}
	return errors
}

// Messages validates data and maps every failed field to its
// user-facing message, one entry per violated field.
func Messages(data interface{}, messages map[string]string) []string {
	var out []string
	for _, e := range ValidateStruct(data) {
		if msg, ok := messages[e.FailedField]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, fmt.Sprintf("O campo %s é inválido", e.FailedField))
	}
	return out
}
