package env

import (
	stderrors "errors"
	"strings"

	"github.com/thesunny/get-dynamic-env/internal/pkg/errors"
	"github.com/thesunny/get-dynamic-env/internal/pkg/logger"
)

// DefaultPublicPrefix marks variables that may be exposed to client code.
const DefaultPublicPrefix = "NEXT_PUBLIC_"

const (
	opExtract = "env.ExtractByNames"
	opServer  = "env.ValidateServer"
	opClient  = "env.ValidateClient"
)

// Reasons wrapped by every ValidationError. Match them with errors.Is.
var (
	ErrMissing       = stderrors.New("variable is not defined")
	ErrNotString     = stderrors.New("value is not a string")
	ErrMissingPrefix = stderrors.New("key lacks the public prefix")
)

// ValidationError is the only error the validator returns. The offending key
// is available through Key().
type ValidationError = errors.Error

// Config configures a Validator.
type Config struct {
	// PublicPrefix is required on every key given to ValidateClient.
	// Empty means DefaultPublicPrefix.
	PublicPrefix string
	// Logger receives one record per call. Values are never logged.
	// Nil discards.
	Logger *logger.Logger
	// Recorder, if set, is told the outcome of every call.
	Recorder Recorder
}

// Recorder observes the outcome of each check. reason is nil on success and
// one of ErrMissing, ErrNotString or ErrMissingPrefix otherwise.
type Recorder interface {
	ObserveValidation(op string, reason error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveValidation(string, error) {}

// Validator runs the three checks with a fixed configuration. It holds no
// mutable state and is safe for concurrent use.
type Validator struct {
	prefix string
	log    *logger.Logger
	rec    Recorder
}

// New creates a Validator.
func New(cfg Config) *Validator {
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = DefaultPublicPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	return &Validator{
		prefix: cfg.PublicPrefix,
		log:    cfg.Logger.WithComponent("env"),
		rec:    cfg.Recorder,
	}
}

var std = New(Config{})

// ExtractByNames validates names against src using the default Validator.
func ExtractByNames(src Source, names ...string) (Vars, error) {
	return std.ExtractByNames(src, names...)
}

// ValidateServer validates call-site values using the default Validator.
func ValidateServer(values Values) (Vars, error) {
	return std.ValidateServer(values)
}

// ValidateClient validates public call-site values using the default
// Validator and DefaultPublicPrefix.
func ValidateClient(values Values) (Vars, error) {
	return std.ValidateClient(values)
}

// PublicPrefix returns the prefix ValidateClient enforces.
func (v *Validator) PublicPrefix() string {
	return v.prefix
}

// ExtractByNames looks up each name in src, in order, and copies its value
// unmodified. It stops at the first name that is absent or not a string.
// Repeated names are looked up again and resolve to the same entry.
//
// src must be a store that can be inspected at run time. A nil or empty
// source fails on the first name.
func (v *Validator) ExtractByNames(src Source, names ...string) (Vars, error) {
	if src == nil {
		src = Map(nil)
	}

	out := make(Vars, len(names))
	for _, key := range names {
		raw, ok := src.Lookup(key)
		if !ok || isAbsent(raw) {
			return nil, v.fail(errors.ValidationKey(opExtract, key, ErrMissing,
				"expected source to have %q defined but it is not", key))
		}
		s, ok := asString(raw)
		if !ok {
			shown := describe(raw)
			return nil, v.fail(errors.ValidationKey(opExtract, key, ErrNotString,
				"expected %q to be a string but got %s", key, shown).WithField("value", shown))
		}
		out[key] = s
	}

	v.succeed(opExtract, out)
	return out, nil
}

// ValidateServer checks that every value is a string and returns the values
// with surrounding whitespace removed. Keys are checked in sorted order and
// the first failure is returned.
//
// Whitespace is what unicode.IsSpace reports, as in strings.TrimSpace. That
// includes U+0085 (NEL) and excludes U+FEFF (BOM), the reverse of
// JavaScript's String.prototype.trim.
func (v *Validator) ValidateServer(values Values) (Vars, error) {
	return v.validate(opServer, values, false)
}

// ValidateClient is ValidateServer for variables exposed to client code.
// Each key must carry the public prefix; the prefix is checked before the
// value, so a misnamed key fails even when its value is fine.
func (v *Validator) ValidateClient(values Values) (Vars, error) {
	return v.validate(opClient, values, true)
}

func (v *Validator) validate(op string, values Values, public bool) (Vars, error) {
	out := make(Vars, len(values))
	for _, key := range values.Keys() {
		if public && !strings.HasPrefix(key, v.prefix) {
			return nil, v.fail(errors.ValidationKey(op, key, ErrMissingPrefix,
				"expected %q to start with %q", key, v.prefix).WithField("prefix", v.prefix))
		}

		raw := values[key]
		s, ok := asString(raw)
		if !ok {
			reason := ErrNotString
			if isAbsent(raw) {
				reason = ErrMissing
			}
			shown := describe(raw)
			return nil, v.fail(errors.ValidationKey(op, key, reason,
				"expected %q to be a string but got %s", key, shown).WithField("value", shown))
		}
		out[key] = strings.TrimSpace(s)
	}

	v.succeed(op, out)
	return out, nil
}

func (v *Validator) succeed(op string, out Vars) {
	v.log.Debug("env validated", "op", op, "keys", len(out))
	v.rec.ObserveValidation(op, nil)
}

func (v *Validator) fail(err *errors.Error) error {
	v.log.Warn("env validation failed",
		"op", err.Op,
		"key", err.Key(),
		"reason", err.Err.Error(),
	)
	v.rec.ObserveValidation(err.Op, err.Err)
	return err
}
