// Package yamlutil keeps goccy/go-yaml behind a small surface: strict
// decoding for user-supplied files and encoding for reports.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds the documents UnmarshalStrict accepts.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v. Unknown keys are errors, so a typo
// in a config file is reported instead of silently ignored.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return wrap(yaml.UnmarshalWithOptions(data, v, yaml.Strict()))
}

// DecodeFile reads path and decodes it with UnmarshalStrict. Read errors
// are returned as is so callers can test for os.ErrNotExist.
func DecodeFile(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}

// Marshal encodes v. Fields without a yaml tag fall back to their json tag,
// so report types need only one set of tags.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	return out, wrap(err)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("yamlutil: %w", err)
}
