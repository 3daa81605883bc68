package kubeconfig

import (
	"bytes"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/khelp/internal/errors"
)

// Default values for a freshly created document.
const (
	DefaultAPIVersion = "v1"
	DefaultKind       = "Config"
)

// Config is the kubeconfig document: three named collections, the
// current-context pointer, and preserved opaque fields.
type Config struct {
	APIVersion     string
	Kind           string
	Preferences    *yaml.Node
	Clusters       []ClusterEntry
	Users          []UserEntry
	Contexts       []ContextEntry
	CurrentContext string

	// Extra holds unrecognized top-level fields, preserved verbatim.
	Extra Extra
}

// ClusterEntry is one named cluster.
type ClusterEntry struct {
	Name    string
	Cluster ClusterSpec
	Extra   Extra
}

// ClusterSpec holds the connection fields of a cluster.
type ClusterSpec struct {
	Server                   string
	CertificateAuthority     string
	CertificateAuthorityData string
	InsecureSkipTLSVerify    *bool
	Extra                    Extra
}

// UserEntry is one named user. The auth payload is opaque: certificates,
// tokens, exec plugins and anything else pass through untouched.
type UserEntry struct {
	Name  string
	User  *yaml.Node
	Extra Extra
}

// ContextEntry is one named context.
type ContextEntry struct {
	Name    string
	Context ContextSpec
	Extra   Extra
}

// ContextSpec pairs a cluster reference with a user reference. The
// references are weak: they name entries that may not exist.
type ContextSpec struct {
	Cluster   string
	User      string
	Namespace string
	Extra     Extra
}

// New returns an empty document with default apiVersion and kind.
func New() *Config {
	return &Config{
		APIVersion:  DefaultAPIVersion,
		Kind:        DefaultKind,
		Preferences: newMapping(),
	}
}

// Parse decodes kubeconfig YAML. Blank content yields a fresh default
// document; malformed content fails with an error marked ErrParse that
// names the offending location.
func Parse(data []byte) (*Config, error) {
	if strings.TrimSpace(string(data)) == "" {
		return New(), nil
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing kubeconfig"), errors.ErrParse)
	}

	if cfg.APIVersion == "" {
		return nil, errors.Mark(errors.New("kubeconfig is missing apiVersion"), errors.ErrParse)
	}
	if cfg.Kind == "" {
		return nil, errors.Mark(errors.New("kubeconfig is missing kind"), errors.ErrParse)
	}

	if err := cfg.checkUniqueNames(); err != nil {
		return nil, errors.Mark(err, errors.ErrParse)
	}

	return cfg, nil
}

// Marshal encodes the document with kubectl-style two-space indentation.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "serializing kubeconfig")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "serializing kubeconfig")
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the top-level document mapping.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	return eachPair(value, func(key string, keyNode, valNode *yaml.Node) error {
		switch key {
		case "apiVersion":
			s, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "apiVersion")
			}
			c.APIVersion = s
		case "kind":
			s, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "kind")
			}
			c.Kind = s
		case "preferences":
			c.Preferences = deepCopyNode(valNode)
		case "current-context":
			s, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "current-context")
			}
			c.CurrentContext = s
		case "clusters":
			return eachItem(valNode, func(i int, item *yaml.Node) error {
				var entry ClusterEntry
				if err := entry.UnmarshalYAML(item); err != nil {
					return errors.Wrapf(err, "clusters[%d]", i)
				}
				c.Clusters = append(c.Clusters, entry)
				return nil
			})
		case "users":
			return eachItem(valNode, func(i int, item *yaml.Node) error {
				var entry UserEntry
				if err := entry.UnmarshalYAML(item); err != nil {
					return errors.Wrapf(err, "users[%d]", i)
				}
				c.Users = append(c.Users, entry)
				return nil
			})
		case "contexts":
			return eachItem(valNode, func(i int, item *yaml.Node) error {
				var entry ContextEntry
				if err := entry.UnmarshalYAML(item); err != nil {
					return errors.Wrapf(err, "contexts[%d]", i)
				}
				c.Contexts = append(c.Contexts, entry)
				return nil
			})
		default:
			c.Extra = append(c.Extra, ExtraField{Key: deepCopyNode(keyNode), Value: deepCopyNode(valNode)})
		}
		return nil
	})
}

// MarshalYAML encodes the document, emitting known fields in the
// conventional order and preserved fields after them.
func (c *Config) MarshalYAML() (any, error) {
	m := newMapping()
	appendPair(m, "apiVersion", strNode(c.APIVersion))
	appendPair(m, "kind", strNode(c.Kind))

	prefs := c.Preferences
	if prefs == nil {
		prefs = newMapping()
	}
	appendPair(m, "preferences", prefs)

	clusters := newSequence()
	for i := range c.Clusters {
		n, err := c.Clusters[i].marshalNode()
		if err != nil {
			return nil, err
		}
		clusters.Content = append(clusters.Content, n)
	}
	appendPair(m, "clusters", clusters)

	users := newSequence()
	for i := range c.Users {
		n, err := c.Users[i].marshalNode()
		if err != nil {
			return nil, err
		}
		users.Content = append(users.Content, n)
	}
	appendPair(m, "users", users)

	contexts := newSequence()
	for i := range c.Contexts {
		n, err := c.Contexts[i].marshalNode()
		if err != nil {
			return nil, err
		}
		contexts.Content = append(contexts.Content, n)
	}
	appendPair(m, "contexts", contexts)

	if c.CurrentContext != "" {
		appendPair(m, "current-context", strNode(c.CurrentContext))
	}

	appendExtra(m, c.Extra)
	return m, nil
}

// UnmarshalYAML decodes a `{name, cluster}` entry.
func (e *ClusterEntry) UnmarshalYAML(value *yaml.Node) error {
	sawSpec := false
	err := eachPair(value, func(key string, keyNode, valNode *yaml.Node) error {
		switch key {
		case "name":
			s, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "name")
			}
			e.Name = s
		case "cluster":
			sawSpec = true
			return e.Cluster.unmarshalNode(valNode)
		default:
			e.Extra = append(e.Extra, ExtraField{Key: deepCopyNode(keyNode), Value: deepCopyNode(valNode)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if e.Name == "" {
		return errors.Newf("line %d: cluster entry is missing a name", value.Line)
	}
	if !sawSpec {
		return errors.Newf("cluster %q has no cluster data", e.Name)
	}
	return nil
}

func (e *ClusterEntry) marshalNode() (*yaml.Node, error) {
	m := newMapping()
	spec, err := e.Cluster.marshalNode()
	if err != nil {
		return nil, err
	}
	appendPair(m, "cluster", spec)
	appendPair(m, "name", strNode(e.Name))
	appendExtra(m, e.Extra)
	return m, nil
}

func (s *ClusterSpec) unmarshalNode(value *yaml.Node) error {
	err := eachPair(value, func(key string, keyNode, valNode *yaml.Node) error {
		switch key {
		case "server":
			v, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "server")
			}
			s.Server = v
		case "certificate-authority":
			v, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "certificate-authority")
			}
			s.CertificateAuthority = v
		case "certificate-authority-data":
			v, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "certificate-authority-data")
			}
			s.CertificateAuthorityData = v
		case "insecure-skip-tls-verify":
			var b bool
			if err := resolved(valNode).Decode(&b); err != nil {
				return errors.Wrap(err, "insecure-skip-tls-verify")
			}
			s.InsecureSkipTLSVerify = &b
		default:
			s.Extra = append(s.Extra, ExtraField{Key: deepCopyNode(keyNode), Value: deepCopyNode(valNode)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.Server == "" {
		return errors.Newf("line %d: cluster is missing a server", value.Line)
	}
	return nil
}

func (s *ClusterSpec) marshalNode() (*yaml.Node, error) {
	m := newMapping()
	if s.CertificateAuthorityData != "" {
		appendPair(m, "certificate-authority-data", strNode(s.CertificateAuthorityData))
	}
	if s.CertificateAuthority != "" {
		appendPair(m, "certificate-authority", strNode(s.CertificateAuthority))
	}
	appendPair(m, "server", strNode(s.Server))
	if s.InsecureSkipTLSVerify != nil {
		appendPair(m, "insecure-skip-tls-verify", &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!bool",
			Value: strconv.FormatBool(*s.InsecureSkipTLSVerify),
		})
	}
	appendExtra(m, s.Extra)
	return m, nil
}

// UnmarshalYAML decodes a `{name, user}` entry. The user payload stays
// an opaque node.
func (e *UserEntry) UnmarshalYAML(value *yaml.Node) error {
	err := eachPair(value, func(key string, keyNode, valNode *yaml.Node) error {
		switch key {
		case "name":
			s, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "name")
			}
			e.Name = s
		case "user":
			e.User = deepCopyNode(valNode)
		default:
			e.Extra = append(e.Extra, ExtraField{Key: deepCopyNode(keyNode), Value: deepCopyNode(valNode)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if e.Name == "" {
		return errors.Newf("line %d: user entry is missing a name", value.Line)
	}
	if e.User == nil {
		return errors.Newf("user %q has no user data", e.Name)
	}
	return nil
}

func (e *UserEntry) marshalNode() (*yaml.Node, error) {
	m := newMapping()
	appendPair(m, "name", strNode(e.Name))
	user := e.User
	if user == nil {
		user = newMapping()
	}
	appendPair(m, "user", user)
	appendExtra(m, e.Extra)
	return m, nil
}

// UnmarshalYAML decodes a `{name, context}` entry.
func (e *ContextEntry) UnmarshalYAML(value *yaml.Node) error {
	sawSpec := false
	err := eachPair(value, func(key string, keyNode, valNode *yaml.Node) error {
		switch key {
		case "name":
			s, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "name")
			}
			e.Name = s
		case "context":
			sawSpec = true
			return e.Context.unmarshalNode(valNode)
		default:
			e.Extra = append(e.Extra, ExtraField{Key: deepCopyNode(keyNode), Value: deepCopyNode(valNode)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if e.Name == "" {
		return errors.Newf("line %d: context entry is missing a name", value.Line)
	}
	if !sawSpec {
		return errors.Newf("context %q has no context data", e.Name)
	}
	return nil
}

func (e *ContextEntry) marshalNode() (*yaml.Node, error) {
	m := newMapping()
	spec := newMapping()
	appendPair(spec, "cluster", strNode(e.Context.Cluster))
	appendPair(spec, "user", strNode(e.Context.User))
	if e.Context.Namespace != "" {
		appendPair(spec, "namespace", strNode(e.Context.Namespace))
	}
	appendExtra(spec, e.Context.Extra)
	appendPair(m, "context", spec)
	appendPair(m, "name", strNode(e.Name))
	appendExtra(m, e.Extra)
	return m, nil
}

func (s *ContextSpec) unmarshalNode(value *yaml.Node) error {
	err := eachPair(value, func(key string, keyNode, valNode *yaml.Node) error {
		switch key {
		case "cluster":
			v, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "cluster")
			}
			s.Cluster = v
		case "user":
			v, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "user")
			}
			s.User = v
		case "namespace":
			v, err := scalarString(valNode)
			if err != nil {
				return errors.Wrap(err, "namespace")
			}
			s.Namespace = v
		default:
			s.Extra = append(s.Extra, ExtraField{Key: deepCopyNode(keyNode), Value: deepCopyNode(valNode)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.Cluster == "" {
		return errors.Newf("line %d: context is missing a cluster reference", value.Line)
	}
	if s.User == "" {
		return errors.Newf("line %d: context is missing a user reference", value.Line)
	}
	return nil
}

// Cluster returns the cluster entry with the given name, or nil.
func (c *Config) Cluster(name string) *ClusterEntry {
	for i := range c.Clusters {
		if c.Clusters[i].Name == name {
			return &c.Clusters[i]
		}
	}
	return nil
}

// User returns the user entry with the given name, or nil.
func (c *Config) User(name string) *UserEntry {
	for i := range c.Users {
		if c.Users[i].Name == name {
			return &c.Users[i]
		}
	}
	return nil
}

// Context returns the context entry with the given name, or nil.
func (c *Config) Context(name string) *ContextEntry {
	for i := range c.Contexts {
		if c.Contexts[i].Name == name {
			return &c.Contexts[i]
		}
	}
	return nil
}

// DeepCopy returns an independent copy of the document, including all
// preserved nodes.
func (c *Config) DeepCopy() *Config {
	out := &Config{
		APIVersion:     c.APIVersion,
		Kind:           c.Kind,
		Preferences:    deepCopyNode(c.Preferences),
		CurrentContext: c.CurrentContext,
		Extra:          c.Extra.deepCopy(),
	}
	if c.Clusters != nil {
		out.Clusters = make([]ClusterEntry, len(c.Clusters))
		for i := range c.Clusters {
			out.Clusters[i] = c.Clusters[i].DeepCopy()
		}
	}
	if c.Users != nil {
		out.Users = make([]UserEntry, len(c.Users))
		for i := range c.Users {
			out.Users[i] = c.Users[i].DeepCopy()
		}
	}
	if c.Contexts != nil {
		out.Contexts = make([]ContextEntry, len(c.Contexts))
		for i := range c.Contexts {
			out.Contexts[i] = c.Contexts[i].DeepCopy()
		}
	}
	return out
}

// DeepCopy returns an independent copy of the entry.
func (e ClusterEntry) DeepCopy() ClusterEntry {
	out := e
	out.Extra = e.Extra.deepCopy()
	out.Cluster.Extra = e.Cluster.Extra.deepCopy()
	if e.Cluster.InsecureSkipTLSVerify != nil {
		b := *e.Cluster.InsecureSkipTLSVerify
		out.Cluster.InsecureSkipTLSVerify = &b
	}
	return out
}

// DeepCopy returns an independent copy of the entry.
func (e UserEntry) DeepCopy() UserEntry {
	out := e
	out.User = deepCopyNode(e.User)
	out.Extra = e.Extra.deepCopy()
	return out
}

// DeepCopy returns an independent copy of the entry.
func (e ContextEntry) DeepCopy() ContextEntry {
	out := e
	out.Extra = e.Extra.deepCopy()
	out.Context.Extra = e.Context.Extra.deepCopy()
	return out
}
