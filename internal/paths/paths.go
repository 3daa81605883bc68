package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// EnvKubeconfig names the environment variable that overrides the
// default kubeconfig location.
const EnvKubeconfig = "KUBECONFIG"

// BackupSuffix is appended to the kubeconfig path for the pre-mutation
// backup written by the persister.
const BackupSuffix = ".bak"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Kubeconfig returns the path of the managed kubeconfig file.
// The KUBECONFIG environment variable takes precedence; otherwise the
// file is ~/.kube/config. The file does not have to exist.
func Kubeconfig() (string, error) {
	if p := os.Getenv(EnvKubeconfig); p != "" {
		return p, nil
	}

	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kube", "config"), nil
}

// BackupPath returns the sibling backup path for a kubeconfig path.
func BackupPath(kubeconfig string) string {
	return kubeconfig + BackupSuffix
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the directory holding khelp's own settings file.
// Returns: <ConfigHome>/khelp/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), "khelp")
}

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm (0700) is used. Idempotent.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}
