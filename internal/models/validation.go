package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid marks every input validation failure.
var ErrInvalid = errors.New("invalid data format")

// ValidationError carries the failing fields. The detail is meant for logs;
// clients only ever see ErrInvalid's message.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid data format: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator shares gin's "binding" tag so inputs validate the same way
// whether they arrive through ShouldBindJSON or are built in code.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
	})
	return validate
}

// checkStruct runs tag validation and merges the failures with extra
// hand-written checks.
func checkStruct(v any, extra []string) error {
	fields := append([]string(nil), extra...)
	if err := structValidator().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// cleanList trims entries, drops blanks and never returns nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
