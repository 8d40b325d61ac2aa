package schema

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const defsPrefix = "#/$defs/"

var (
	cache   = make(map[reflect.Type]*Schema)
	cacheMu sync.RWMutex
)

// Schema of the tool input
type Schema struct {
	RawSchema *jsonschema.Schema
	// Parameters is the object schema of the tool input, with references inlined
	Parameters *jsonschema.Schema
}

// New returns the schema of the type, the result is cached
func New(t reflect.Type) (*Schema, error) {
	cacheMu.RLock()
	s, ok := cache[t]
	cacheMu.RUnlock()
	if ok {
		return s, nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if s, ok := cache[t]; ok {
		return s, nil
	}

	raw := JSONSchema(t)
	s = &Schema{
		RawSchema:  raw,
		Parameters: ToFunctionSchema(raw),
	}
	cache[t] = s
	return s, nil
}

func (s *Schema) String() string {
	js, _ := json.MarshalIndent(s.Parameters, "", "\t")
	return string(js)
}

// ToFunctionSchema returns the root object of the schema with references inlined
func ToFunctionSchema(raw *jsonschema.Schema) *jsonschema.Schema {
	rootID := strings.TrimPrefix(raw.Ref, defsPrefix)

	root := raw
	defs := make(map[string]*jsonschema.Schema, len(raw.Definitions))
	for name, def := range raw.Definitions {
		if name == rootID {
			root = def
			continue
		}
		defs[name] = def
	}

	res := &jsonschema.Schema{
		Type:       root.Type,
		Properties: root.Properties,
		Required:   root.Required,
	}
	inlineRefs(res.Properties, defs)
	return res
}

// inlineRefs replaces the references by definitions,
// unknown references become untyped objects.
func inlineRefs(props *orderedmap.OrderedMap[string, *jsonschema.Schema], defs map[string]*jsonschema.Schema) {
	if props == nil {
		return
	}
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		prop := pair.Value
		if prop.Ref != "" {
			def, ok := defs[strings.TrimPrefix(prop.Ref, defsPrefix)]
			if !ok {
				pair.Value = &jsonschema.Schema{Type: "object", Description: prop.Description}
				continue
			}
			pair.Value = def
			prop = def
		}

		inlineRefs(prop.Properties, defs)

		if prop.Items != nil && prop.Items.Ref != "" {
			if def, ok := defs[strings.TrimPrefix(prop.Items.Ref, defsPrefix)]; ok {
				prop.Items = def
			} else {
				prop.Items = &jsonschema.Schema{Type: "object"}
			}
		}
	}
}

// JSONSchema reflects the draft-07 schema of the type
func JSONSchema(t reflect.Type) *jsonschema.Schema {
	jsonschema.Version = "http://json-schema.org/draft-07/schema#"

	r := &jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
		// request types of different packages may share the name
		Namer: func(t reflect.Type) string {
			if t.Kind() != reflect.Struct {
				return t.Name()
			}
			fullname := t.PkgPath() + "/" + t.Name()
			return t.Name() + "@" + strconv.FormatUint(xxhash.Sum64String(fullname), 10)
		},
	}
	return r.ReflectFromType(t)
}

// FromAny decodes the schema from any JSON-compatible value,
// for example the input schema of a remote tool.
func FromAny(v any) (*jsonschema.Schema, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := new(jsonschema.Schema)
	if err = json.Unmarshal(js, s); err != nil {
		return nil, err
	}
	return s, nil
}
