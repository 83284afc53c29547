package main

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/thesunny/get-dynamic-env/env"
)

var testSource = env.StringMap{
	"DATABASE_URL":    " postgres://db ",
	"HTTP_PORT":       "8080",
	"NEXT_PUBLIC_API": "https://api.example.com",
	"VITE_SITE":       "site",
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "nothing to check",
			args:       nil,
			wantCode:   exitOK,
			wantStdout: "ok: 0 server, 0 client variables",
		},
		{
			name:       "server and client",
			args:       []string{"-server", "DATABASE_URL, HTTP_PORT", "-client", "NEXT_PUBLIC_API"},
			wantCode:   exitOK,
			wantStdout: "ok: 2 server, 1 client variables",
		},
		{
			name:       "missing server variable",
			args:       []string{"-server", "DATABASE_URL,REDIS_ADDR"},
			wantCode:   exitInvalid,
			wantStderr: `"REDIS_ADDR"`,
		},
		{
			name:       "client without prefix",
			args:       []string{"-client", "DATABASE_URL"},
			wantCode:   exitInvalid,
			wantStderr: `to start with "NEXT_PUBLIC_"`,
		},
		{
			name:       "custom prefix",
			args:       []string{"-prefix", "VITE_", "-client", "VITE_SITE"},
			wantCode:   exitOK,
			wantStdout: "ok: 0 server, 1 client variables",
		},
		{
			name:     "unknown flag",
			args:     []string{"-nope"},
			wantCode: exitUsage,
		},
		{
			name:       "stray argument",
			args:       []string{"DATABASE_URL"},
			wantCode:   exitUsage,
			wantStderr: "unexpected arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, testSource, &stdout, &stderr)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-json", "-server", "HTTP_PORT,DATABASE_URL", "-client", "NEXT_PUBLIC_API"}, testSource, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	var rep report
	if err := json.Unmarshal(stdout.Bytes(), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if !rep.OK {
		t.Error("expected ok report")
	}
	if !reflect.DeepEqual(rep.Server, []string{"DATABASE_URL", "HTTP_PORT"}) {
		t.Errorf("server = %v", rep.Server)
	}
	if !reflect.DeepEqual(rep.Client, []string{"NEXT_PUBLIC_API"}) {
		t.Errorf("client = %v", rep.Client)
	}
}

func TestRunJSONFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-json", "-client", "NEXT_PUBLIC_MISSING"}, testSource, &stdout, &stderr)
	if code != exitInvalid {
		t.Fatalf("run() = %d, want %d", code, exitInvalid)
	}

	var rep report
	if err := json.Unmarshal(stdout.Bytes(), &rep); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if rep.OK || rep.Key != "NEXT_PUBLIC_MISSING" || rep.Error == "" {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestRunNeverPrintsValues(t *testing.T) {
	var stdout, stderr bytes.Buffer
	run([]string{"-log-level", "debug", "-server", "DATABASE_URL", "-client", "NEXT_PUBLIC_API"}, testSource, &stdout, &stderr)

	out := stdout.String() + stderr.String()
	for _, secret := range []string{"postgres://db", "https://api.example.com"} {
		if strings.Contains(out, secret) {
			t.Errorf("output leaked %q: %s", secret, out)
		}
	}
}
