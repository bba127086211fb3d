package config

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// ValidationError represents a configuration file error with position context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// newValidator returns a validator with the keepalive-specific tags registered
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hostkind", func(fl validator.FieldLevel) bool {
		return notify.ValidHostKind(fl.Field().String())
	})
	_ = v.RegisterValidation("accentcolor", func(fl validator.FieldLevel) bool {
		_, err := notify.ParseColor(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg against its validate tags. The first failing field is
// reported as a configuration CLIError keyed by its dotted config path.
func Validate(cfg *Configuration) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "config validation failed")
	}

	fe := fieldErrs[0]
	cliErr := apperrors.InvalidConfigValue(configPath(fe.Namespace()), describeTag(fe))
	cliErr.Err = err
	return cliErr
}

// configPath turns "Configuration.host.kind" into "host.kind"
func configPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// describeTag explains a failed validation tag in config terms
func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hostkind":
		return fmt.Sprintf("%q is not one of: auto, terminal, desktop, none", fe.Value())
	case "accentcolor":
		return fmt.Sprintf("%q is not a #RRGGBB colour", fe.Value())
	case "oneof":
		return fmt.Sprintf("%v is not one of: %s", fe.Value(), fe.Param())
	case "hostname_port":
		return fmt.Sprintf("%q is not a host:port address", fe.Value())
	case "min", "gte", "gt":
		return fmt.Sprintf("%v is below the minimum %s", fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("%v exceeds the maximum %s", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed the '%s' check", fe.Tag())
	}
}

// describeParseError adds line and column information to JSON syntax errors.
// Other errors are returned unchanged.
func describeParseError(path string, err error) error {
	var syntaxErr *stdjson.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return err
	}
	line, column := lineColumn(data, syntaxErr.Offset)
	return &ValidationError{
		FilePath: path,
		Line:     line,
		Column:   column,
		Message:  syntaxErr.Error(),
	}
}

// lineColumn converts a byte offset into a 1-based line and column
func lineColumn(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	column = int(offset) - bytes.LastIndexByte(prefix, '\n') - 1
	if column < 1 {
		column = 1
	}
	return line, column
}
