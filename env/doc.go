// Package env validates environment variables at startup.
//
// Three checks are provided:
//
//   - ExtractByNames looks names up in a Source and returns their values
//     untouched.
//   - ValidateServer takes values the caller read explicitly and trims them.
//   - ValidateClient does the same for variables meant for client code and
//     requires every key to carry the public prefix (NEXT_PUBLIC_ by default).
//
// Each check either returns a fresh Vars holding exactly the requested keys or
// a *ValidationError naming the first offending key. Nothing is returned on
// failure, and the inputs are never modified.
//
// ExtractByNames needs a Source that can be inspected at run time, such as OS
// or Snapshot(). A store whose entries were replaced by constants at build
// time, leaving an empty map behind, fails on every name. Prefer
// ValidateServer with values read at the call site when the set of variables
// is fixed:
//
//	vars, err := env.ValidateServer(env.Values{
//		"DATABASE_URL": env.Getenv("DATABASE_URL"),
//		"HTTP_PORT":    env.Getenv("HTTP_PORT"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package env
