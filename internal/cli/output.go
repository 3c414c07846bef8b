package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pfrederiksen/pigeon-go/pigeon"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	Operation string        `json:"operation"`
	SentAt    time.Time     `json:"sent_at"`
	Outcome   string        `json:"outcome,omitempty"`
	Response  pigeon.Result `json:"response,omitempty"`
}

// NewOutputResult wraps the response of a send operation.
func NewOutputResult(operation string, res pigeon.Result) *OutputResult {
	return &OutputResult{
		Operation: operation,
		SentAt:    time.Now().UTC(),
		Response:  res,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Outcome != "" {
		fmt.Fprintf(w, "%s: OTP %s\n", result.Operation, result.Outcome)
		return nil
	}

	msg := result.Response.Message()
	if msg == "" {
		msg = "OK"
	}
	fmt.Fprintf(w, "%s: %s\n", result.Operation, msg)

	if data := result.Response.Data(); len(data) > 0 {
		writeFields(w, "  ", data)
	}

	if verbose && len(result.Response) > 0 {
		fmt.Fprintln(w, "Response:")
		writeFields(w, "  ", result.Response)
	}

	return nil
}

// writeFields prints a map with sorted keys, one per line.
func writeFields(w io.Writer, indent string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			fmt.Fprintf(w, "%s%s:\n", indent, k)
			writeFields(w, indent+"  ", v)
		default:
			fmt.Fprintf(w, "%s%s: %v\n", indent, k, v)
		}
	}
}
