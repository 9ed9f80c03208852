package carteira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object with fields in insertion order, so
// that ledger lines always serialize with "kind" and "date" first. The zero
// value is ready to use; the first error sticks and surfaces in MarshalJSON.
type jsonObjectWriter struct {
	fields bytes.Buffer
	err    error
}

// Append writes a key-value pair, marshaling the value with json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("marshaling field %q: %w", key, err)
		return w
	}
	if w.fields.Len() > 0 {
		w.fields.WriteByte(',')
	}
	fmt.Fprintf(&w.fields, "%q:", key)
	w.fields.Write(raw)
	return w
}

// Optional appends the pair only when value is not its type's zero value,
// keeping empty memos and subtypes out of the ledger file.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// EmbedFrom marshals v as a JSON object and splices its fields in place,
// which is how embedded base entries contribute their leading fields.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("marshaling embedded object: %w", err)
		return w
	}
	inner := bytes.TrimSpace(raw)
	if len(inner) >= 2 && inner[0] == '{' {
		inner = bytes.TrimSpace(inner[1 : len(inner)-1])
	}
	if len(inner) > 0 {
		if w.fields.Len() > 0 {
			w.fields.WriteByte(',')
		}
		w.fields.Write(inner)
	}
	return w
}

// MarshalJSON wraps the accumulated fields in braces.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.fields.Len()+2)
	out = append(out, '{')
	out = append(out, w.fields.Bytes()...)
	out = append(out, '}')
	return out, nil
}
