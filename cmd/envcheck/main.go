// Command envcheck validates the process environment before a service starts.
//
//	envcheck -server DATABASE_URL,HTTP_PORT -client NEXT_PUBLIC_API_URL
//
// It exits 0 when every listed variable is valid and 1 on the first invalid
// one. Values are never printed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thesunny/get-dynamic-env/env"
	"github.com/thesunny/get-dynamic-env/internal/config"
	"github.com/thesunny/get-dynamic-env/internal/pkg/errors"
	"github.com/thesunny/get-dynamic-env/internal/pkg/logger"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type report struct {
	OK     bool     `json:"ok"`
	Server []string `json:"server"`
	Client []string `json:"client"`
	Error  string   `json:"error,omitempty"`
	Key    string   `json:"key,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], env.OS, os.Stdout, os.Stderr))
}

func run(args []string, src env.Source, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("envcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	serverNames := fs.String("server", "", "comma separated server variables, trimmed")
	clientNames := fs.String("client", "", "comma separated client variables, must carry the public prefix")
	prefix := fs.String("prefix", env.DefaultPublicPrefix, "public variable prefix for -client")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	logLevel := fs.String("log-level", "error", "validator log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "envcheck: unexpected arguments: %v\n", fs.Args())
		return exitUsage
	}

	log := logger.New(logger.Config{
		Level:       *logLevel,
		Format:      "text",
		Output:      stderr,
		ServiceName: "envcheck",
	})
	v := env.New(env.Config{PublicPrefix: *prefix, Logger: log})

	rep := report{Server: []string{}, Client: []string{}}
	err := check(v, src, config.CSV(*serverNames), config.CSV(*clientNames), &rep)
	rep.OK = err == nil
	if err != nil {
		rep.Error = err.Error()
		rep.Key = errors.GetKey(err)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	} else if err != nil {
		fmt.Fprintln(stderr, "envcheck:", err)
	} else {
		fmt.Fprintf(stdout, "ok: %d server, %d client variables\n", len(rep.Server), len(rep.Client))
	}

	if err != nil {
		return exitInvalid
	}
	return exitOK
}

func check(v *env.Validator, src env.Source, serverNames, clientNames []string, rep *report) error {
	extracted, err := v.ExtractByNames(src, serverNames...)
	if err != nil {
		return err
	}
	server, err := v.ValidateServer(extracted.Values())
	if err != nil {
		return err
	}

	values := make(env.Values, len(clientNames))
	for _, name := range clientNames {
		raw, _ := src.Lookup(name)
		values[name] = raw
	}
	client, err := v.ValidateClient(values)
	if err != nil {
		return err
	}

	rep.Server = server.Keys()
	rep.Client = client.Keys()
	return nil
}
