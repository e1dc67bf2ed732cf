// Package jsonld converts between the resource and value models and their
// JSON-LD wire form in the knora-api v2 complex schema.
package jsonld

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/fivetwenty-io/dsp-client/internal/vocab"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// Object is one JSON-LD node.
type Object = map[string]interface{}

// Parse decodes a JSON document, keeping numbers as json.Number so that
// decimals survive without float rounding.
func Parse(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj Object
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("parsing JSON-LD: %w", err)
	}

	if obj == nil {
		return nil, fmt.Errorf("%w: document is not an object", dsp.ErrDecode)
	}

	return obj, nil
}

// Objects returns v as a list of nodes. A single node and an array of nodes
// are both accepted; anything else yields nil.
func Objects(v interface{}) []Object {
	switch t := v.(type) {
	case map[string]interface{}:
		return []Object{t}
	case []interface{}:
		out := make([]Object, 0, len(t))

		for _, item := range t {
			if obj, ok := item.(map[string]interface{}); ok {
				out = append(out, obj)
			}
		}

		return out
	}

	return nil
}

// GraphNodes returns the members of @graph, the document itself when it is
// a single node, and nothing for an empty object.
func GraphNodes(doc Object) []Object {
	if graph, ok := doc[vocab.Graph]; ok {
		return Objects(graph)
	}

	if _, ok := doc[vocab.ID]; ok {
		return []Object{doc}
	}

	return nil
}

// TypeOf returns the first @type of a node.
func TypeOf(obj Object) string {
	switch t := obj[vocab.Type].(type) {
	case string:
		return t
	case []interface{}:
		if len(t) > 0 {
			s, _ := t[0].(string)

			return s
		}
	}

	return ""
}

// HasType reports whether typ is among the node's @type values.
func HasType(obj Object, typ string) bool {
	switch t := obj[vocab.Type].(type) {
	case string:
		return t == typ
	case []interface{}:
		for _, item := range t {
			if item == typ {
				return true
			}
		}
	}

	return false
}

// ID returns the @id of a node.
func ID(obj Object) string {
	s, _ := obj[vocab.ID].(string)

	return s
}

// Ref returns the @id of the node stored under key, or a bare string value.
func Ref(obj Object, key string) string {
	switch t := obj[key].(type) {
	case string:
		return t
	case map[string]interface{}:
		return ID(t)
	case []interface{}:
		for _, node := range Objects(t) {
			if id := ID(node); id != "" {
				return id
			}
		}
	}

	return ""
}

// Literal returns the lexical form of a plain or typed literal.
func Literal(obj Object, key string) (string, bool) {
	return literalOf(obj[key])
}

func literalOf(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]interface{}:
		if inner, ok := t[vocab.Value]; ok {
			return literalOf(inner)
		}
	}

	return "", false
}

// String returns a string literal or "".
func String(obj Object, key string) string {
	s, _ := Literal(obj, key)

	return s
}

// Bool returns a boolean literal; strings "true"/"false" are accepted.
func Bool(obj Object, key string) (bool, error) {
	s, ok := Literal(obj, key)
	if !ok {
		return false, nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}

	return b, nil
}

// Int returns an integer literal and whether it was present.
func Int(obj Object, key string) (int64, bool, error) {
	s, ok := Literal(obj, key)
	if !ok {
		return 0, false, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", key, err)
	}

	return n, true, nil
}

// Decimal returns a decimal literal.
func Decimal(obj Object, key string) (decimal.Decimal, error) {
	s, ok := Literal(obj, key)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", dsp.ErrMissingField, key)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}

	return d, nil
}

// Time returns a timestamp literal, or nil when absent.
func Time(obj Object, key string) (*time.Time, error) {
	s, ok := Literal(obj, key)
	if !ok || s == "" {
		return nil, nil
	}

	ts, err := ParseTimestamp(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	return &ts, nil
}

// ParseTimestamp parses the server's xsd:dateTimeStamp values. Non-RFC3339
// forms seen in older servers are handled by dateparse.
func ParseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}

	ts, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}

	return ts, nil
}

// typed builds a typed literal.
func typed(datatype, lexical string) Object {
	return Object{vocab.Type: datatype, vocab.Value: lexical}
}

// ref builds an IRI reference.
func ref(iri string) Object {
	return Object{vocab.ID: iri}
}
