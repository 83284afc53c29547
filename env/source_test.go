package env

import (
	"reflect"
	"testing"
)

func TestSources(t *testing.T) {
	tests := []struct {
		name   string
		src    Source
		key    string
		want   any
		wantOK bool
	}{
		{"map present", Map{"A": 1}, "A", 1, true},
		{"map nil value", Map{"A": nil}, "A", nil, true},
		{"map missing", Map{}, "A", nil, false},
		{"nil map", Map(nil), "A", nil, false},
		{"string map present", StringMap{"A": "x"}, "A", "x", true},
		{"string map missing", StringMap{}, "A", nil, false},
		{"lookup func present", LookupFunc(func(string) (string, bool) { return "v", true }), "A", "v", true},
		{"lookup func missing", LookupFunc(func(string) (string, bool) { return "", false }), "A", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.src.Lookup(tt.key)
			if ok != tt.wantOK {
				t.Errorf("Lookup() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Lookup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOSSource(t *testing.T) {
	t.Setenv("GDE_TEST_PRESENT", "value")

	got, err := ExtractByNames(OS, "GDE_TEST_PRESENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Get("GDE_TEST_PRESENT") != "value" {
		t.Errorf("expected value, got %q", got.Get("GDE_TEST_PRESENT"))
	}

	if _, err := ExtractByNames(OS, "GDE_TEST_DEFINITELY_UNSET"); err == nil {
		t.Error("expected error for unset variable")
	}
}

func TestSnapshotCopiesVariables(t *testing.T) {
	t.Setenv("GDE_TEST_SNAPSHOT", "a=b")

	snap := Snapshot()
	if snap["GDE_TEST_SNAPSHOT"] != "a=b" {
		t.Fatalf("expected value with '=' preserved, got %q", snap["GDE_TEST_SNAPSHOT"])
	}

	snap["GDE_TEST_SNAPSHOT"] = "mutated"
	if Snapshot()["GDE_TEST_SNAPSHOT"] != "a=b" {
		t.Error("mutating the snapshot must not affect the process environment")
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("GDE_TEST_GETENV", " x ")

	if Getenv("GDE_TEST_GETENV") != " x " {
		t.Errorf("expected raw value, got %v", Getenv("GDE_TEST_GETENV"))
	}
	if Getenv("GDE_TEST_GETENV_UNSET") != nil {
		t.Error("expected nil for unset variable")
	}

	got, err := ValidateServer(Values{"GDE_TEST_GETENV": Getenv("GDE_TEST_GETENV")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Get("GDE_TEST_GETENV") != "x" {
		t.Errorf("expected trimmed value, got %q", got.Get("GDE_TEST_GETENV"))
	}
}

func TestKeysSorted(t *testing.T) {
	want := []string{"A", "B", "C"}

	if got := (Values{"C": "", "A": "", "B": ""}).Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values.Keys() = %v, want %v", got, want)
	}
	if got := (Vars{"C": "", "A": "", "B": ""}).Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vars.Keys() = %v, want %v", got, want)
	}
	if got := (StringMap{"C": "", "A": "", "B": ""}).Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("StringMap.Keys() = %v, want %v", got, want)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "undefined"},
		{(*string)(nil), "undefined"},
		{42, "42 (int)"},
		{false, "false (bool)"},
	}
	for _, tt := range tests {
		if got := describe(tt.in); got != tt.want {
			t.Errorf("describe(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
