package shared

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
)

// Output formats accepted by --format
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// WriteFormatted encodes v to w as YAML or indented JSON.
func WriteFormatted(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return apperrors.InvalidOutputFormat(format)
	}
}
