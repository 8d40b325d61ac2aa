package toml

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Marshal encodes the value, TOML documents must be tables
func (e *Encoder) Marshal(v any) ([]byte, error) {
	if _, ok := v.([]any); ok {
		return nil, errors.New("TOML document must be a table")
	}
	return toml.Marshal(v)
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	return toml.Unmarshal(bs, ret)
}
