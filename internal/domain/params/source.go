package params

import "net/url"

// Source is a flat, query-style parameter set.
type Source interface {
	Keys() []string
	Get(key string) (string, bool)
}

// Values adapts url.Values to Source. Only the first value of a key is read.
type Values url.Values

// Keys returns every present key in unspecified order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	return keys
}

// Get returns the first value of key.
func (v Values) Get(key string) (string, bool) {
	vs, ok := v[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Map adapts a plain string map to Source.
type Map map[string]string

// Keys returns every present key in unspecified order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Get returns the value of key.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
