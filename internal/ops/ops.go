// Package ops implements the context-level operations: switch, rename,
// delete with cascade, orphan cleanup, and export. All operations work
// on an in-memory document; callers load before and save after.
package ops

import (
	"sort"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/kubeconfig"
)

// Switch sets current-context to name. The context must exist.
func Switch(cfg *kubeconfig.Config, name string) error {
	if cfg.Context(name) == nil {
		return errors.Mark(errors.Newf("context %q not found", name), errors.ErrNotFound)
	}
	cfg.CurrentContext = name
	return nil
}

// Rename changes a context's name. The referenced cluster and user keep
// their names; current-context follows the rename when it pointed at
// the old name.
func Rename(cfg *kubeconfig.Config, oldName, newName string) error {
	if oldName == newName {
		return errors.Mark(errors.Newf("context is already named %q", oldName), errors.ErrValidation)
	}
	entry := cfg.Context(oldName)
	if entry == nil {
		return errors.Mark(errors.Newf("context %q not found", oldName), errors.ErrNotFound)
	}
	if cfg.Context(newName) != nil {
		return errors.Mark(errors.Newf("context %q already exists", newName), errors.ErrConflict)
	}

	entry.Name = newName
	if cfg.CurrentContext == oldName {
		cfg.CurrentContext = newName
	}
	return nil
}

// DeleteResult reports what a delete removed beyond the context itself.
type DeleteResult struct {
	RemovedClusters []string
	RemovedUsers    []string

	// NewCurrentContext is the reassigned current-context when the
	// deleted context was current; empty when current-context was
	// cleared or untouched.
	NewCurrentContext string
	// CurrentReassigned is true when current-context changed at all.
	CurrentReassigned bool
}

// Delete removes the named context. With cascade, the context's own
// cluster and user are removed too when no remaining context references
// them. Deleting the current context reassigns current-context to the
// lexicographically first remaining context, or clears it when none
// remain.
func Delete(cfg *kubeconfig.Config, name string, cascade bool) (*DeleteResult, error) {
	entry := cfg.Context(name)
	if entry == nil {
		return nil, errors.Mark(errors.Newf("context %q not found", name), errors.ErrNotFound)
	}
	clusterRef := entry.Context.Cluster
	userRef := entry.Context.User

	cfg.Contexts = removeContext(cfg.Contexts, name)

	result := &DeleteResult{}
	if cascade {
		if cfg.Cluster(clusterRef) != nil && !clusterReferenced(cfg, clusterRef) {
			cfg.Clusters = removeCluster(cfg.Clusters, clusterRef)
			result.RemovedClusters = append(result.RemovedClusters, clusterRef)
		}
		if cfg.User(userRef) != nil && !userReferenced(cfg, userRef) {
			cfg.Users = removeUser(cfg.Users, userRef)
			result.RemovedUsers = append(result.RemovedUsers, userRef)
		}
	}

	if cfg.CurrentContext == name {
		cfg.CurrentContext = firstContextName(cfg)
		result.NewCurrentContext = cfg.CurrentContext
		result.CurrentReassigned = true
	}
	return result, nil
}

// Cleanup removes every orphaned cluster and user. It is idempotent: a
// second run on the same document removes nothing.
func Cleanup(cfg *kubeconfig.Config) (removedClusters, removedUsers []string) {
	removedClusters, removedUsers = kubeconfig.Orphans(cfg)
	for _, name := range removedClusters {
		cfg.Clusters = removeCluster(cfg.Clusters, name)
	}
	for _, name := range removedUsers {
		cfg.Users = removeUser(cfg.Users, name)
	}
	return removedClusters, removedUsers
}

// Export builds a standalone document holding the named contexts and
// the clusters and users they reference, deduplicated. Every name must
// resolve, references included. The result has no current-context so
// the receiving side chooses its own.
func Export(cfg *kubeconfig.Config, names []string) (*kubeconfig.Config, error) {
	if len(names) == 0 {
		return nil, errors.Mark(errors.New("no contexts to export"), errors.ErrValidation)
	}

	out := kubeconfig.New()
	seenContexts := make(map[string]bool)
	seenClusters := make(map[string]bool)
	seenUsers := make(map[string]bool)

	for _, name := range names {
		if seenContexts[name] {
			continue
		}
		entry := cfg.Context(name)
		if entry == nil {
			return nil, errors.Mark(errors.Newf("context %q not found", name), errors.ErrNotFound)
		}
		cluster := cfg.Cluster(entry.Context.Cluster)
		if cluster == nil {
			return nil, errors.Mark(
				errors.Newf("context %q references unknown cluster %q", name, entry.Context.Cluster),
				errors.ErrNotFound)
		}
		user := cfg.User(entry.Context.User)
		if user == nil {
			return nil, errors.Mark(
				errors.Newf("context %q references unknown user %q", name, entry.Context.User),
				errors.ErrNotFound)
		}

		seenContexts[name] = true
		out.Contexts = append(out.Contexts, entry.DeepCopy())
		if !seenClusters[cluster.Name] {
			seenClusters[cluster.Name] = true
			out.Clusters = append(out.Clusters, cluster.DeepCopy())
		}
		if !seenUsers[user.Name] {
			seenUsers[user.Name] = true
			out.Users = append(out.Users, user.DeepCopy())
		}
	}
	return out, nil
}

// ContextNames returns all context names in document order.
func ContextNames(cfg *kubeconfig.Config) []string {
	names := make([]string, 0, len(cfg.Contexts))
	for i := range cfg.Contexts {
		names = append(names, cfg.Contexts[i].Name)
	}
	return names
}

func firstContextName(cfg *kubeconfig.Config) string {
	names := ContextNames(cfg)
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

func clusterReferenced(cfg *kubeconfig.Config, name string) bool {
	for i := range cfg.Contexts {
		if cfg.Contexts[i].Context.Cluster == name {
			return true
		}
	}
	return false
}

func userReferenced(cfg *kubeconfig.Config, name string) bool {
	for i := range cfg.Contexts {
		if cfg.Contexts[i].Context.User == name {
			return true
		}
	}
	return false
}

func removeContext(entries []kubeconfig.ContextEntry, name string) []kubeconfig.ContextEntry {
	out := entries[:0]
	for i := range entries {
		if entries[i].Name != name {
			out = append(out, entries[i])
		}
	}
	return out
}

func removeCluster(entries []kubeconfig.ClusterEntry, name string) []kubeconfig.ClusterEntry {
	out := entries[:0]
	for i := range entries {
		if entries[i].Name != name {
			out = append(out, entries[i])
		}
	}
	return out
}

func removeUser(entries []kubeconfig.UserEntry, name string) []kubeconfig.UserEntry {
	out := entries[:0]
	for i := range entries {
		if entries[i].Name != name {
			out = append(out, entries[i])
		}
	}
	return out
}
