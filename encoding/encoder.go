// Package encoding renders tool results and listings in the output formats of the CLI.
package encoding

import (
	"github.com/cockroachdb/errors"
	dummyenc "github.com/effective-security/fintools/encoding/dummy"
	jsonenc "github.com/effective-security/fintools/encoding/json"
	tomlenc "github.com/effective-security/fintools/encoding/toml"
	yamlenc "github.com/effective-security/fintools/encoding/yaml"
)

// ErrUnsupportedMode is returned for unknown output formats
var ErrUnsupportedMode = errors.New("unsupported encoding mode")

type Encoder interface {
	Marshal(v any) ([]byte, error)
	Unmarshal([]byte, any) error
}

type Mode = string

const (
	ModeJSON      Mode = "json"
	ModeYAML      Mode = "yaml"
	ModeTOML      Mode = "toml"
	ModePlainText Mode = "plain_text"
)

// ModeDefault is the default mode for the encoder.
var ModeDefault = ModeJSON

// Modes returns the supported modes
func Modes() []Mode {
	return []Mode{ModeJSON, ModeYAML, ModeTOML, ModePlainText}
}

func PredefinedEncoder(mode Mode) (Encoder, error) {
	switch mode {
	case ModeJSON:
		return jsonenc.NewEncoder(), nil
	case ModeYAML:
		return yamlenc.NewEncoder(), nil
	case ModeTOML:
		return tomlenc.NewEncoder(), nil
	case ModePlainText:
		return dummyenc.NewEncoder(), nil
	default:
		return nil, errors.Mark(errors.Newf("mode %q is not supported", mode), ErrUnsupportedMode)
	}
}

// Reencode converts the JSON document returned by a tool into the mode.
// Plain text mode returns the document as is.
func Reencode(mode Mode, doc string) ([]byte, error) {
	if mode == ModePlainText {
		return []byte(doc), nil
	}
	enc, err := PredefinedEncoder(mode)
	if err != nil {
		return nil, err
	}

	var v any
	if err = jsonenc.NewEncoder().Unmarshal([]byte(doc), &v); err != nil {
		// prompts and plain tools return text
		return dummyenc.NewEncoder().Marshal(doc)
	}
	bs, err := enc.Marshal(v)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to encode as %s", mode)
	}
	return bs, nil
}
