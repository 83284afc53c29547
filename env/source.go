package env

import (
	"os"
	"sort"
	"strings"
)

// Source is a runtime-inspectable key-value store of candidate variables.
// Lookup reports whether key is present; a present value is only usable when
// it is a string.
type Source interface {
	Lookup(key string) (any, bool)
}

// Map is a Source over loosely typed values, e.g. decoded JSON or YAML.
// A nil value counts as absent.
type Map map[string]any

func (m Map) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// StringMap is a Source over plain strings.
type StringMap map[string]string

func (m StringMap) Lookup(key string) (any, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	return v, true
}

// Keys returns the keys of m in sorted order.
func (m StringMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LookupFunc adapts a function with the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func (f LookupFunc) Lookup(key string) (any, bool) {
	v, ok := f(key)
	if !ok {
		return nil, false
	}
	return v, true
}

// OS reads the live process environment.
var OS Source = LookupFunc(os.LookupEnv)

// Snapshot copies the current process environment. Later changes to the
// process environment are not visible through the copy, and mutating the copy
// does not touch the process.
func Snapshot() StringMap {
	out := make(StringMap)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Getenv reads one process variable at the call site for use in Values.
// It returns nil when the variable is unset.
func Getenv(key string) any {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return nil
}
