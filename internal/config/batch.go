package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/pigeon-go/pigeon"
)

var errNoEntries = errors.New("parsing batch file: no entries")

// LoadBatchFile reads a list of batch entries from a YAML or JSON file.
// A path of "-" reads from stdin.
func LoadBatchFile(path string) ([]pigeon.Payload, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	return ParseBatch(data)
}

// ParseBatch decodes a YAML (or JSON) sequence of mappings. Entries are kept
// as written; nothing is compacted or validated.
//
// Unquoted YAML scalars only become numbers or booleans when they read as one
// exactly, so a phone number like 0888888888 stays a string. Mapping keys are
// always strings.
func ParseBatch(data []byte) ([]pigeon.Payload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errNoEntries
	}

	var (
		entries []pigeon.Payload
		err     error
	)
	if json.Valid(data) {
		entries, err = parseJSONBatch(data)
	} else {
		entries, err = parseYAMLBatch(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(entries) == 0 {
		return nil, errNoEntries
	}
	return entries, nil
}

func parseJSONBatch(data []byte) ([]pigeon.Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var entries []pigeon.Payload
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseYAMLBatch(data []byte) ([]pigeon.Payload, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind == 0 {
		return nil, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of entries", root.Line)
	}

	entries := make([]pigeon.Payload, 0, len(root.Content))
	for i, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("entry %d (line %d): expected a mapping", i+1, item.Line)
		}
		entries = append(entries, pigeon.Payload(mappingValue(item)))
	}
	return entries, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nodeValue(n *yaml.Node) any {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return mappingValue(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, nodeValue(c))
		}
		return out
	case yaml.ScalarNode:
		return scalarValue(n)
	default:
		return nil
	}
}

func mappingValue(n *yaml.Node) map[string]any {
	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		out[key.Value] = nodeValue(n.Content[i+1])
	}
	return out
}

// scalarValue keeps the literal text unless the scalar is a plain decimal
// number or boolean.
func scalarValue(n *yaml.Node) any {
	if n.Style != 0 {
		return n.Value
	}

	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return b
		}
	case "!!int", "!!float":
		if hasLeadingZero(n.Value) {
			return n.Value
		}
		if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	}
	return n.Value
}

// hasLeadingZero reports whether s is a number written with a leading zero,
// such as 0888888888, 007 or 0x1F. "0" and "0.5" are not.
func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.' && s[1] != 'e' && s[1] != 'E'
}
