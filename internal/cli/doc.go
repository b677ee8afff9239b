// Package cli turns command-line arguments into an app.Config. It owns flag
// definitions, usage text and the exit codes of usage errors.
package cli
