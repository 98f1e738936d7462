package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/forgeads/forgeads"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// encode writes v to w in format. YAML output keeps the JSON field names
// and their order.
func encode(w io.Writer, format string, v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	if format == FormatYAML {
		var node yaml.Node
		if err := yaml.Unmarshal(buf, &node); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		blockStyle(&node)
		if buf, err = yaml.Marshal(&node); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		_, err = w.Write(buf)
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", buf)
	return err
}

// blockStyle clears the flow and quoting styles yaml assigns when parsing JSON.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && n.Style == yaml.DoubleQuotedStyle {
		n.Style = 0
	} else {
		n.Style &^= yaml.FlowStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// fail reports err on stderr and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", forgeads.UserMessage(err))
	return err
}
