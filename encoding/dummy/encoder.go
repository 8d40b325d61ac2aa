package dummy

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Encoder passes text through
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return []byte(val), nil
	case []byte:
		return val, nil
	case fmt.Stringer:
		return []byte(val.String()), nil
	default:
		return []byte(fmt.Sprint(v)), nil
	}
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	switch v := ret.(type) {
	case *string:
		*v = string(bs)
	case *[]byte:
		*v = bs
	default:
		return errors.Newf("unsupported type %T", ret)
	}
	return nil
}
