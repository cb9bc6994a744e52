package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// legacyCategoryKey is the field older browser exports used for the category.
const legacyCategoryKey = "type"

// storedForm remembers how a record looked in the store. An unmodified record
// is written back with its original bytes; a modified one keeps the keys this
// package does not model.
type storedForm struct {
	raw   json.RawMessage
	canon []byte
	extra map[string]json.RawMessage
}

// decodeStored unmarshals data into fields (a pointer to a method-less alias of
// the record) and captures the stored form. fill runs before the canonical
// form is taken so fallbacks such as legacy categories count as unmodified.
func decodeStored(data []byte, fields any, fill func(extra map[string]json.RawMessage)) (storedForm, error) {
	if err := json.Unmarshal(data, fields); err != nil {
		return storedForm{}, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return storedForm{}, err
	}

	known := fieldNames(reflect.TypeOf(fields).Elem())
	extra := make(map[string]json.RawMessage)
	for k, v := range all {
		if !known[k] {
			extra[k] = v
		}
	}
	if fill != nil {
		fill(extra)
	}

	canon, err := json.Marshal(fields)
	if err != nil {
		return storedForm{}, err
	}
	return storedForm{raw: append(json.RawMessage(nil), data...), canon: canon, extra: extra}, nil
}

// encode marshals fields, reusing the stored bytes when nothing changed.
func (f storedForm) encode(fields any) ([]byte, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if f.raw != nil && bytes.Equal(data, f.canon) {
		return f.raw, nil
	}
	if len(f.extra) == 0 {
		return data, nil
	}

	keys := make([]string, 0, len(f.extra))
	for k := range f.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, k := range keys {
		name, _ := json.Marshal(k)
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(f.extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// legacyCategory returns the category stored under the old key, if any.
func legacyCategory(extra map[string]json.RawMessage) Category {
	raw, ok := extra[legacyCategoryKey]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	c, err := ParseCategory(s)
	if err != nil {
		return ""
	}
	return c
}

func fieldNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		names[name] = true
	}
	return names
}
