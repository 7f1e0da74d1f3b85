package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validador compartido; validator.Validate es seguro para uso concurrente.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO con sus tags `validate`. Devuelve un error legible
// con la lista de campos rechazados, o nil si el struct es válido.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("campos inválidos: %s", strings.Join(parts, ", "))
}
