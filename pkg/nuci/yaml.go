package nuci

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML builds a configuration tree from a YAML document. Mapping keys
// become child nodes in document order; scalars become leaf values; sequences
// become children named by their index.
func ParseYAML(raw []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &StoreError{Op: "parse yaml", Err: err}
	}
	root := &Node{Name: "config"}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		if err := buildNode(root, doc.Content[0]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func buildNode(target *Node, src *yaml.Node) error {
	switch src.Kind {
	case yaml.ScalarNode:
		target.Value = src.Value
	case yaml.MappingNode:
		for i := 0; i+1 < len(src.Content); i += 2 {
			child := &Node{Name: src.Content[i].Value}
			if err := buildNode(child, src.Content[i+1]); err != nil {
				return err
			}
			target.Children = append(target.Children, child)
		}
	case yaml.SequenceNode:
		for i, item := range src.Content {
			child := &Node{Name: fmt.Sprintf("%d", i)}
			if err := buildNode(child, item); err != nil {
				return err
			}
			target.Children = append(target.Children, child)
		}
	case yaml.AliasNode:
		return buildNode(target, src.Alias)
	default:
		return &StoreError{Op: "parse yaml", Err: fmt.Errorf("unsupported node kind %d", src.Kind)}
	}
	return nil
}
