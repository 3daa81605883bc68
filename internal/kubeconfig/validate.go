package kubeconfig

import (
	"github.com/thoreinstein/khelp/internal/errors"
)

// checkUniqueNames verifies that names are unique within each of the
// three collections.
func (c *Config) checkUniqueNames() error {
	seen := make(map[string]struct{}, len(c.Clusters))
	for i := range c.Clusters {
		name := c.Clusters[i].Name
		if _, dup := seen[name]; dup {
			return errors.Newf("duplicate cluster name %q", name)
		}
		seen[name] = struct{}{}
	}

	seen = make(map[string]struct{}, len(c.Users))
	for i := range c.Users {
		name := c.Users[i].Name
		if _, dup := seen[name]; dup {
			return errors.Newf("duplicate user name %q", name)
		}
		seen[name] = struct{}{}
	}

	seen = make(map[string]struct{}, len(c.Contexts))
	for i := range c.Contexts {
		name := c.Contexts[i].Name
		if _, dup := seen[name]; dup {
			return errors.Newf("duplicate context name %q", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// Validate checks the document invariants: unique names per collection
// and a current-context that resolves when set. Violations are marked
// ErrValidation. Dangling context references are NOT validation
// failures; see DanglingRefs.
func (c *Config) Validate() error {
	if err := c.checkUniqueNames(); err != nil {
		return errors.Mark(err, errors.ErrValidation)
	}

	if c.CurrentContext != "" && c.Context(c.CurrentContext) == nil {
		return errors.Mark(
			errors.Newf("current-context %q does not name a context", c.CurrentContext),
			errors.ErrValidation)
	}

	return nil
}

// DanglingRef describes a context reference that does not resolve.
type DanglingRef struct {
	Context string // context holding the reference
	Kind    string // "cluster" or "user"
	Name    string // the referenced, missing name
}

// DanglingRefs reports every context reference to a missing cluster or
// user. Dangling references are tolerated at load time; operations that
// must dereference them decide for themselves whether this is fatal.
func (c *Config) DanglingRefs() []DanglingRef {
	var refs []DanglingRef
	for i := range c.Contexts {
		ctx := &c.Contexts[i]
		if c.Cluster(ctx.Context.Cluster) == nil {
			refs = append(refs, DanglingRef{Context: ctx.Name, Kind: "cluster", Name: ctx.Context.Cluster})
		}
		if c.User(ctx.Context.User) == nil {
			refs = append(refs, DanglingRef{Context: ctx.Name, Kind: "user", Name: ctx.Context.User})
		}
	}
	return refs
}
