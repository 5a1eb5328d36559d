package extract

import (
	"math"
	"strings"
)

// Payload is the loosely typed third-party response shape. The schema
// is not controlled by this system, so every lookup degrades to a nil
// or zero value instead of failing the whole transform.
type Payload map[string]interface{}

// AsPayload converts a raw decoded JSON value into a Payload, returning
// nil for anything that is not an object.
func AsPayload(v interface{}) Payload {
	if m, ok := v.(map[string]interface{}); ok {
		return Payload(m)
	}
	return nil
}

// lookup walks a dotted path ("resoFacts.lotSize") through nested
// objects. A missing or non-object intermediate yields nil.
func (p Payload) lookup(path string) interface{} {
	if p == nil {
		return nil
	}
	var cur interface{} = map[string]interface{}(p)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// Map returns the object at path, or nil.
func (p Payload) Map(path string) Payload {
	return AsPayload(p.lookup(path))
}

// Slice returns the array at path, or nil.
func (p Payload) Slice(path string) []interface{} {
	if s, ok := p.lookup(path).([]interface{}); ok {
		return s
	}
	return nil
}

// String returns the first path that resolves to a non-empty string.
func (p Payload) String(paths ...string) string {
	for _, path := range paths {
		if s, ok := p.lookup(path).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Float returns the first path that resolves to a finite number.
// JSON numbers decode as float64; numeric strings are parsed through
// the price rules so "$1,250,000" style values still resolve.
func (p Payload) Float(paths ...string) *float64 {
	for _, path := range paths {
		if f := toFloat(p.lookup(path)); f != nil {
			return f
		}
	}
	return nil
}

// Int returns the first path that resolves to a number, truncated.
func (p Payload) Int(paths ...string) *int {
	if f := p.Float(paths...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// Bool returns the first path that resolves to a boolean.
func (p Payload) Bool(paths ...string) bool {
	for _, path := range paths {
		if b, ok := p.lookup(path).(bool); ok {
			return b
		}
	}
	return false
}

func toFloat(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		f := n
		return &f
	case int:
		f := float64(n)
		return &f
	case string:
		return ParsePrice(n)
	}
	return nil
}
