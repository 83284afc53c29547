package httpapi

import (
	"github.com/thesunny/get-dynamic-env/env"
)

// LoadPublic reads names from src and runs them through v.ValidateClient.
// The prefix is checked before the value, so a server secret listed by
// mistake is rejected for its name and never read into the result.
func LoadPublic(src env.Source, v *env.Validator, names []string) (env.Vars, error) {
	if src == nil {
		src = env.OS
	}
	if v == nil {
		v = env.New(env.Config{})
	}

	values := make(env.Values, len(names))
	for _, name := range names {
		raw, _ := src.Lookup(name)
		values[name] = raw
	}

	return v.ValidateClient(values)
}
