// Package cli implements the command-line interface for pigeon.
//
// The cli package provides the Cobra-based CLI with one command per Pigeon
// operation (mail, text, notify and otp groups), text or JSON output, and a
// dry-run mode that prints requests instead of sending them. Configuration
// comes from the environment (see internal/config).
package cli
