package ops

import (
	"bytes"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/kubeconfig"
)

// editHeader is prepended to the edit view so the user knows what they
// are looking at. Comment lines survive a round-trip through the YAML
// parser because they are stripped before parsing the result.
const editHeader = `# Editing a single context. Save and close to apply, or leave the
# file unchanged to abort. The context name cannot be changed here;
# use the rename command for that.
`

// EditView renders the named context as a standalone snippet: the
// context entry plus whichever of its cluster and user resolve. The
// snippet is what gets handed to the editor.
func EditView(cfg *kubeconfig.Config, name string) ([]byte, error) {
	entry := cfg.Context(name)
	if entry == nil {
		return nil, errors.Mark(errors.Newf("context %q not found", name), errors.ErrNotFound)
	}

	view := kubeconfig.New()
	view.Contexts = append(view.Contexts, entry.DeepCopy())
	if cluster := cfg.Cluster(entry.Context.Cluster); cluster != nil {
		view.Clusters = append(view.Clusters, cluster.DeepCopy())
	}
	if user := cfg.User(entry.Context.User); user != nil {
		view.Users = append(view.Users, user.DeepCopy())
	}

	data, err := kubeconfig.Marshal(view)
	if err != nil {
		return nil, err
	}
	return append([]byte(editHeader), data...), nil
}

// ApplyEdit parses an edited snippet and folds it back into cfg. The
// snippet must hold exactly one context and its name must match; the
// edited cluster and user entries replace same-named entries in cfg,
// or are added when the edit introduced new names. The edited context's
// cluster and user references must resolve against the document or the
// snippet itself, so an edit cannot leave a dangling reference behind.
func ApplyEdit(cfg *kubeconfig.Config, name string, edited []byte) error {
	view, err := kubeconfig.Parse(edited)
	if err != nil {
		return err
	}

	if len(view.Contexts) != 1 {
		return errors.Mark(
			errors.Newf("edited file must contain exactly one context, found %d", len(view.Contexts)),
			errors.ErrValidation)
	}
	editedCtx := view.Contexts[0]
	if editedCtx.Name != name {
		return errors.Mark(
			errors.Newf("context name changed from %q to %q; use rename instead", name, editedCtx.Name),
			errors.ErrValidation)
	}
	entry := cfg.Context(name)
	if entry == nil {
		return errors.Mark(errors.Newf("context %q not found", name), errors.ErrNotFound)
	}
	if ref := editedCtx.Context.Cluster; cfg.Cluster(ref) == nil && view.Cluster(ref) == nil {
		return errors.Mark(
			errors.Newf("edited context references unknown cluster %q", ref),
			errors.ErrValidation)
	}
	if ref := editedCtx.Context.User; cfg.User(ref) == nil && view.User(ref) == nil {
		return errors.Mark(
			errors.Newf("edited context references unknown user %q", ref),
			errors.ErrValidation)
	}
	*entry = editedCtx.DeepCopy()

	for i := range view.Clusters {
		edited := view.Clusters[i].DeepCopy()
		if existing := cfg.Cluster(edited.Name); existing != nil {
			*existing = edited
		} else {
			cfg.Clusters = append(cfg.Clusters, edited)
		}
	}
	for i := range view.Users {
		edited := view.Users[i].DeepCopy()
		if existing := cfg.User(edited.Name); existing != nil {
			*existing = edited
		} else {
			cfg.Users = append(cfg.Users, edited)
		}
	}
	return nil
}

// Unchanged reports whether the edited bytes match the original view,
// ignoring trailing whitespace. An unchanged edit means abort.
func Unchanged(original, edited []byte) bool {
	return bytes.Equal(bytes.TrimSpace(original), bytes.TrimSpace(edited))
}
