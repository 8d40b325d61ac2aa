package secapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// Record is a loosely typed JSON object returned by the API
type Record map[string]any

// String returns the value of the field as a trimmed string,
// or empty string if the field is missing or null.
func (r Record) String(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// MappingResponse is one of SingleRecord, WrappedRecords, or RecordList.
type MappingResponse interface {
	// Records returns the response as a list of candidate records
	Records() []Record

	mappingResponse()
}

// SingleRecord is a response with one object
type SingleRecord struct {
	Record Record
}

// WrappedRecords is a response object with a list of records in the data field
type WrappedRecords struct {
	Wrapper Record
	Data    []Record
}

// RecordList is a response with a bare list of records
type RecordList []Record

func (r *SingleRecord) Records() []Record {
	if r == nil || r.Record == nil {
		return nil
	}
	return []Record{r.Record}
}

func (r *WrappedRecords) Records() []Record {
	if r == nil {
		return nil
	}
	return r.Data
}

func (r RecordList) Records() []Record {
	return r
}

func (*SingleRecord) mappingResponse()   {}
func (*WrappedRecords) mappingResponse() {}
func (RecordList) mappingResponse()      {}

// ParseMappingResponse detects the shape of the mapping response
func ParseMappingResponse(body []byte) (MappingResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid mapping response: not a JSON")
	}

	res := gjson.ParseBytes(body)
	switch {
	case res.IsArray():
		list, err := decodeRecords(res)
		if err != nil {
			return nil, err
		}
		return RecordList(list), nil
	case res.IsObject():
		var wrapper Record
		if err := decode(res.Raw, &wrapper); err != nil {
			return nil, err
		}
		if data := res.Get("data"); data.IsArray() {
			list, err := decodeRecords(data)
			if err != nil {
				return nil, err
			}
			delete(wrapper, "data")
			return &WrappedRecords{Wrapper: wrapper, Data: list}, nil
		}
		return &SingleRecord{Record: wrapper}, nil
	case res.Type == gjson.Null:
		return RecordList(nil), nil
	default:
		return nil, errors.Newf("invalid mapping response: unexpected %s", res.Type.String())
	}
}

// decodeRecords keeps only object items of the list
func decodeRecords(list gjson.Result) ([]Record, error) {
	var records []Record
	var err error
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		var r Record
		if err = decode(item.Raw, &r); err != nil {
			return false
		}
		records = append(records, r)
		return true
	})
	return records, err
}

func decode(raw string, v any) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode record")
	}
	return nil
}

func decodeBytes(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
