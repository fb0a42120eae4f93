package themecss

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes props as an indented JSON object keyed by property name.
func WriteJSON(w io.Writer, props ComputedProperties) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildOutputMap(props))
}

// WriteYAML writes props as a YAML mapping in schema order.
func WriteYAML(w io.Writer, props ComputedProperties) error {
	node, err := buildYAMLNode(props)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return err
	}
	return encoder.Close()
}

// buildOutputMap converts props to a map for encoders that sort keys.
func buildOutputMap(props ComputedProperties) map[string]any {
	out := make(map[string]any, len(schema))
	for _, e := range props.Entries() {
		out[e.Key] = e.Value
	}
	return out
}

// buildYAMLNode keeps schema order, which a plain map would lose.
func buildYAMLNode(props ComputedProperties) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range props.Entries() {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Key},
			&value,
		)
	}
	return node, nil
}
