package fx

import "maps"

// KeyActive is the reserved parameter that switches an effect on or off.
const KeyActive = "active"

// Params maps parameter names to values.
//
// Values are whatever the caller supplies: Go numbers, bools, strings and
// nested maps, typically decoded from YAML or JSON. The typed getters below
// accept every numeric representation those decoders produce.
type Params map[string]any

// Active returns the value of the reserved active key and whether the key
// is present with a bool value.
func (p Params) Active() (active, ok bool) {
	active, ok = p[KeyActive].(bool)
	return active, ok
}

// Clone returns a shallow copy of p. Clone of nil is an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Float returns a numeric parameter as float64.
func (p Params) Float(key string) (float64, bool) {
	return toFloat(p[key])
}

// Bool returns a bool parameter.
func (p Params) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

// Text returns a string parameter.
func (p Params) Text(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Map returns a nested mapping parameter.
func (p Params) Map(key string) (Params, bool) {
	switch m := p[key].(type) {
	case Params:
		return m, true
	case map[string]any:
		return Params(m), true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
