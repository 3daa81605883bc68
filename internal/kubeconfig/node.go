package kubeconfig

import (
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/khelp/internal/errors"
)

// ExtraField is one unrecognized mapping entry, key and value kept as
// raw nodes.
type ExtraField struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// Extra preserves unrecognized mapping entries in document order.
type Extra []ExtraField

// deepCopy clones the extra fields including their nodes.
func (e Extra) deepCopy() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for i, f := range e {
		out[i] = ExtraField{Key: deepCopyNode(f.Key), Value: deepCopyNode(f.Value)}
	}
	return out
}

// resolved follows alias nodes to their anchor.
func resolved(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// eachPair iterates the key/value pairs of a mapping node, calling fn
// with the key string and the value node. Returns an error when the
// node is not a mapping or a key is not a scalar.
func eachPair(n *yaml.Node, fn func(key string, keyNode, valNode *yaml.Node) error) error {
	n = resolved(n)
	if n == nil || n.Kind != yaml.MappingNode {
		line := 0
		if n != nil {
			line = n.Line
		}
		return errors.Newf("line %d: expected a mapping", line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		if keyNode.Kind != yaml.ScalarNode {
			return errors.Newf("line %d: mapping key is not a scalar", keyNode.Line)
		}
		if err := fn(keyNode.Value, keyNode, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// eachItem iterates the items of a sequence node.
func eachItem(n *yaml.Node, fn func(i int, item *yaml.Node) error) error {
	n = resolved(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		line := 0
		if n != nil {
			line = n.Line
		}
		return errors.Newf("line %d: expected a sequence", line)
	}
	for i, item := range n.Content {
		if err := fn(i, item); err != nil {
			return err
		}
	}
	return nil
}

// scalarString returns the string value of a scalar node.
func scalarString(n *yaml.Node) (string, error) {
	n = resolved(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		line := 0
		if n != nil {
			line = n.Line
		}
		return "", errors.Newf("line %d: expected a scalar value", line)
	}
	return n.Value, nil
}

// strNode builds a plain string scalar node.
func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// newMapping builds an empty mapping node.
func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// newSequence builds an empty sequence node.
func newSequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// appendPair appends a key/value pair to a mapping node.
func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

// appendExtra appends preserved unrecognized fields to a mapping node.
func appendExtra(m *yaml.Node, extra Extra) {
	for _, f := range extra {
		m.Content = append(m.Content, f.Key, f.Value)
	}
}

// deepCopyNode clones a node tree. Anchors and aliases are flattened:
// the copy re-expands aliased content in place, which keeps semantics
// while freeing the copy from the source document's anchor table.
func deepCopyNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode {
		return deepCopyNode(n.Alias)
	}
	out := *n
	out.Alias = nil
	out.Anchor = ""
	if n.Content != nil {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = deepCopyNode(c)
		}
	}
	return &out
}
