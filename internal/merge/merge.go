// Package merge imports one kubeconfig document into another.
//
// Entities are resolved per collection in the order clusters → users →
// contexts, so context references can be rewritten to match whatever
// names their clusters and users ended up with. Name collisions are
// handled by a per-import [Policy]: skip (default), overwrite, or
// rename with a deterministic suffix.
package merge

import (
	"fmt"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/kubeconfig"
)

// Policy decides what happens when an incoming entity's name collides
// with an existing one.
type Policy string

const (
	// PolicySkip discards the incoming entity and keeps the target's.
	PolicySkip Policy = "skip"
	// PolicyOverwrite replaces the target's entity in place, same name.
	PolicyOverwrite Policy = "overwrite"
	// PolicyRename inserts the incoming entity under a derived name.
	PolicyRename Policy = "rename"
)

// RenameSuffix is appended to a colliding name under PolicyRename.
const RenameSuffix = "-imported"

// ParsePolicy converts a string to a Policy. An empty string selects
// the default (skip).
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", string(PolicySkip):
		return PolicySkip, nil
	case string(PolicyOverwrite):
		return PolicyOverwrite, nil
	case string(PolicyRename):
		return PolicyRename, nil
	default:
		return "", errors.Newf("unknown merge policy %q (valid: skip, overwrite, rename)", s)
	}
}

// Renamed records one rename decision.
type Renamed struct {
	Old string
	New string
}

// CollectionSummary lists the per-collection outcome of an import.
type CollectionSummary struct {
	Added       []string
	Overwritten []string
	Skipped     []string
	Renamed     []Renamed
}

// Summary is the structured result of an import.
type Summary struct {
	Clusters CollectionSummary
	Users    CollectionSummary
	Contexts CollectionSummary

	// SwitchedTo is the context the import switched to, when the
	// switch-after-import flag was set and exactly one context was added.
	SwitchedTo string
}

// HasChanges reports whether the import altered the target document.
func (s *Summary) HasChanges() bool {
	return len(s.Clusters.Added) > 0 || len(s.Users.Added) > 0 || len(s.Contexts.Added) > 0 ||
		len(s.Clusters.Overwritten) > 0 || len(s.Users.Overwritten) > 0 || len(s.Contexts.Overwritten) > 0
}

// Options configures an import.
type Options struct {
	// Policy picks the collision behavior. Zero value means skip.
	Policy Policy
	// SwitchToAdded sets current-context to the newly added context,
	// but only when exactly one context was added. Zero or several
	// additions leave current-context unchanged.
	SwitchToAdded bool
}

// Import merges source into target and returns the merged document
// plus a summary. The target is not mutated; the result is a deep copy.
// A source with nothing to import is an error.
func Import(target, source *kubeconfig.Config, opts Options) (*kubeconfig.Config, *Summary, error) {
	policy := opts.Policy
	if policy == "" {
		policy = PolicySkip
	}

	if len(source.Clusters) == 0 && len(source.Users) == 0 && len(source.Contexts) == 0 {
		return nil, nil, errors.New("source kubeconfig contains no contexts, clusters, or users to import")
	}

	out := target.DeepCopy()
	summary := &Summary{}

	// Rename decisions feed the context reference rewrite below.
	clusterRenames := make(map[string]string)
	userRenames := make(map[string]string)

	for _, cluster := range source.Clusters {
		entry := cluster.DeepCopy()
		switch decide(policy, out.Cluster(entry.Name) != nil) {
		case actionAdd:
			out.Clusters = append(out.Clusters, entry)
			summary.Clusters.Added = append(summary.Clusters.Added, entry.Name)
		case actionOverwrite:
			*out.Cluster(entry.Name) = entry
			summary.Clusters.Overwritten = append(summary.Clusters.Overwritten, entry.Name)
		case actionSkip:
			summary.Clusters.Skipped = append(summary.Clusters.Skipped, entry.Name)
		case actionRename:
			newName := availableName(entry.Name, func(n string) bool { return out.Cluster(n) != nil })
			clusterRenames[entry.Name] = newName
			summary.Clusters.Renamed = append(summary.Clusters.Renamed, Renamed{Old: entry.Name, New: newName})
			entry.Name = newName
			out.Clusters = append(out.Clusters, entry)
			summary.Clusters.Added = append(summary.Clusters.Added, newName)
		}
	}

	for _, user := range source.Users {
		entry := user.DeepCopy()
		switch decide(policy, out.User(entry.Name) != nil) {
		case actionAdd:
			out.Users = append(out.Users, entry)
			summary.Users.Added = append(summary.Users.Added, entry.Name)
		case actionOverwrite:
			*out.User(entry.Name) = entry
			summary.Users.Overwritten = append(summary.Users.Overwritten, entry.Name)
		case actionSkip:
			summary.Users.Skipped = append(summary.Users.Skipped, entry.Name)
		case actionRename:
			newName := availableName(entry.Name, func(n string) bool { return out.User(n) != nil })
			userRenames[entry.Name] = newName
			summary.Users.Renamed = append(summary.Users.Renamed, Renamed{Old: entry.Name, New: newName})
			entry.Name = newName
			out.Users = append(out.Users, entry)
			summary.Users.Added = append(summary.Users.Added, newName)
		}
	}

	var added []string
	for _, context := range source.Contexts {
		entry := context.DeepCopy()

		// Keep the source's internal references consistent with the
		// rename decisions above.
		if newName, ok := clusterRenames[entry.Context.Cluster]; ok {
			entry.Context.Cluster = newName
		}
		if newName, ok := userRenames[entry.Context.User]; ok {
			entry.Context.User = newName
		}

		switch decide(policy, out.Context(entry.Name) != nil) {
		case actionAdd:
			out.Contexts = append(out.Contexts, entry)
			summary.Contexts.Added = append(summary.Contexts.Added, entry.Name)
			added = append(added, entry.Name)
		case actionOverwrite:
			*out.Context(entry.Name) = entry
			summary.Contexts.Overwritten = append(summary.Contexts.Overwritten, entry.Name)
		case actionSkip:
			summary.Contexts.Skipped = append(summary.Contexts.Skipped, entry.Name)
		case actionRename:
			newName := availableName(entry.Name, func(n string) bool { return out.Context(n) != nil })
			summary.Contexts.Renamed = append(summary.Contexts.Renamed, Renamed{Old: entry.Name, New: newName})
			entry.Name = newName
			out.Contexts = append(out.Contexts, entry)
			summary.Contexts.Added = append(summary.Contexts.Added, newName)
			added = append(added, newName)
		}
	}

	// Switching on an ambiguous target would be a guess; require
	// exactly one added context.
	if opts.SwitchToAdded && len(added) == 1 {
		out.CurrentContext = added[0]
		summary.SwitchedTo = added[0]
	}

	return out, summary, nil
}

type action int

const (
	actionAdd action = iota
	actionSkip
	actionOverwrite
	actionRename
)

// decide maps a policy and a collision to the action taken. Without a
// collision the entity is always added under its original name.
func decide(policy Policy, collides bool) action {
	if !collides {
		return actionAdd
	}
	switch policy {
	case PolicyOverwrite:
		return actionOverwrite
	case PolicyRename:
		return actionRename
	default:
		return actionSkip
	}
}

// availableName derives a free name by appending RenameSuffix, then a
// numeric disambiguator: name-imported, name-imported-2, name-imported-3, ...
func availableName(base string, taken func(string) bool) string {
	name := base + RenameSuffix
	for counter := 2; taken(name); counter++ {
		name = fmt.Sprintf("%s%s-%d", base, RenameSuffix, counter)
	}
	return name
}
