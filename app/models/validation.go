package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SchemaError reports a record that does not match its schema, either on
// the way in from the store or on the way out to it.
type SchemaError struct {
	Entity string
	Fields []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("malformed %s record: invalid fields %s", e.Entity, strings.Join(e.Fields, ", "))
}

func checkStruct(entity string, v interface{}, extra ...string) error {
	var fields []string
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	fields = append(fields, extra...)
	if len(fields) == 0 {
		return nil
	}
	return &SchemaError{Entity: entity, Fields: fields}
}
