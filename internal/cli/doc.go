// Package cli implements the enmap command-line surface.
//
// The CLI is a thin collaborator over the store core: each invocation
// opens the configured persistent store, performs one operation, and
// closes it again. Store selection comes from flags or a YAML config
// file, with flags taking precedence. Output is text or JSON via the
// --format flag; store errors map to exit code 1, command errors to 2.
package cli
