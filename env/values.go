package env

import (
	"fmt"
	"sort"
)

// Values maps variable names to values read explicitly at the call site.
// A value is valid when it is a string or a non-nil *string.
type Values map[string]any

// Keys returns the keys of v in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Vars is a validated environment. Its key set is exactly the key set that was
// validated and every value is defined.
type Vars map[string]string

// Get returns the value for key, or "" when key was not validated.
func (e Vars) Get(key string) string {
	return e[key]
}

// Keys returns the keys of e in sorted order.
func (e Vars) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values converts e back into call-site values, e.g. to run extracted
// variables through ValidateClient.
func (e Vars) Values() Values {
	out := make(Values, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	default:
		return "", false
	}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(*string)
	return ok && s == nil
}

// describe renders a rejected value for error messages.
func describe(v any) string {
	if isAbsent(v) {
		return "undefined"
	}
	return fmt.Sprintf("%v (%T)", v, v)
}
