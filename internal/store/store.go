// Package store loads and persists the kubeconfig document.
//
// Save is the only place khelp touches the managed file. It writes
// through a temp file in the same directory and an atomic rename, and
// keeps a sibling .bak copy of the prior content whenever a write
// actually changes the file.
package store

import (
	"bytes"
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/khelp/internal/kubeconfig"
	"github.com/thoreinstein/khelp/internal/logging"
	"github.com/thoreinstein/khelp/internal/paths"
	"github.com/thoreinstein/khelp/pkg/fileutil"
)

// FilePerm is the permission for the kubeconfig and its backup.
// Kubeconfigs carry credentials, so they stay private.
const FilePerm os.FileMode = 0o600

// Load reads the kubeconfig at path. A missing or blank file yields a
// fresh default document so first runs work without setup; malformed
// content fails with an error marked ErrParse.
func Load(path string) (*kubeconfig.Config, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kubeconfig.New(), nil
		}
		return nil, errors.Wrapf(err, "reading kubeconfig %s", path)
	}

	cfg, err := kubeconfig.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "kubeconfig %s", path)
	}
	return cfg, nil
}

// Save serializes cfg and atomically replaces the file at path. When
// the target exists and its content differs from the new serialization,
// the prior content is first copied to the sibling backup path.
// Unchanged content is not rewritten and produces no backup.
func Save(ctx context.Context, path string, cfg *kubeconfig.Config) error {
	log := logging.FromContext(ctx)

	data, err := kubeconfig.Marshal(cfg)
	if err != nil {
		return err
	}

	prior, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(prior, data) {
			log.Debug("kubeconfig unchanged, skipping write", "path", path)
			return nil
		}
		backupPath := paths.BackupPath(path)
		if err := fileutil.AtomicWriteFile(backupPath, prior, FilePerm); err != nil {
			return errors.Wrapf(err, "writing backup %s", backupPath)
		}
		log.Debug("created backup", "path", backupPath)
	case errors.Is(err, os.ErrNotExist):
		// First write, nothing to back up.
	default:
		return errors.Wrapf(err, "reading kubeconfig %s", path)
	}

	if err := fileutil.AtomicWriteFile(path, data, FilePerm); err != nil {
		return errors.Wrapf(err, "writing kubeconfig %s", path)
	}
	log.Debug("wrote kubeconfig", "path", path, "bytes", len(data))
	return nil
}
