package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/paths"
	"github.com/thoreinstein/khelp/internal/store"
)

const testKubeconfig = `apiVersion: v1
kind: Config
preferences: {}
clusters:
- cluster:
    server: https://a.example.com
  name: a
- cluster:
    server: https://b.example.com
  name: b
users:
- name: ua
  user:
    token: ta
- name: ub
  user:
    token: tb
contexts:
- context:
    cluster: a
    user: ua
  name: c1
- context:
    cluster: b
    user: ub
    namespace: team-b
  name: c2
current-context: c1
`

// writeTestKubeconfig writes a fixture and returns its path.
func writeTestKubeconfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCommand executes the root command with args and captured output.
// Package-level flag state is reset first so tests do not leak into
// each other.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	listJSON = false
	deleteForce = false
	deleteCleanup = false
	cleanupForce = false
	exportOutput = ""
	addRename = false
	addOverwrite = false
	addSwitch = false
	kubeconfigFlag = ""
	verbosity = 0
	quiet = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "list", "--kubeconfig", path)
	require.NoError(t, err)

	for _, want := range []string{"c1", "c2", "a", "ub", "team-b", "*"} {
		require.Contains(t, out, want)
	}
}

func TestListCommand_JSON(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "list", "--json", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, `"name": "c1"`)
	require.Contains(t, out, `"current": true`)
	require.Contains(t, out, `"namespace": "team-b"`)
}

func TestCurrentCommand(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "current", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "c1")
}

func TestSwitchCommand(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "switch", "c2", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Switched to context: c2")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, "c2", cfg.CurrentContext)
}

func TestSwitchCommand_Missing(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	_, err := runCommand(t, "", "switch", "missing", "--kubeconfig", path)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrNotFound))
	require.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestRenameCommand(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "rename", "c1", "renamed", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Renamed context: c1 -> renamed")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	require.Nil(t, cfg.Context("c1"))
	require.NotNil(t, cfg.Context("renamed"))
	require.Equal(t, "renamed", cfg.CurrentContext)
}

func TestRenameCommand_Conflict(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	_, err := runCommand(t, "", "rename", "c1", "c2", "--kubeconfig", path)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrConflict))
}

func TestDeleteCommand_Force(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "delete", "c1", "--force", "--cleanup", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Deleted context: c1")
	require.Contains(t, out, "Removed cluster(s): a")
	require.Contains(t, out, "Current context is now: c2")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	require.Nil(t, cfg.Context("c1"))
	require.Nil(t, cfg.Cluster("a"))
	require.NotNil(t, cfg.Cluster("b"))
	require.Equal(t, "c2", cfg.CurrentContext)
}

func TestDeleteCommand_PromptDeclined(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "n\n", "delete", "c1", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Aborted")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Context("c1"))
}

func TestDeleteCommand_PromptAccepted(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "y\n", "delete", "c2", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Deleted context: c2")
}

func TestCleanupCommand(t *testing.T) {
	path := writeTestKubeconfig(t, `apiVersion: v1
kind: Config
clusters:
- cluster: {server: https://a}
  name: a
- cluster: {server: https://stale}
  name: stale
users:
- name: ua
  user: {token: t}
contexts:
- context: {cluster: a, user: ua}
  name: c1
`)

	out, err := runCommand(t, "", "cleanup", "--force", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Orphaned cluster(s): stale")
	require.Contains(t, out, "Removed 1 cluster(s) and 0 user(s)")

	out, err = runCommand(t, "", "cleanup", "--force", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Nothing to clean up")
}

func TestExportCommand(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	out, err := runCommand(t, "", "export", "c2", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "name: c2")
	require.Contains(t, out, "server: https://b.example.com")
	require.NotContains(t, out, "current-context")
	require.NotContains(t, out, "name: c1")
}

func TestExportCommand_ToFile(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)
	outPath := filepath.Join(t.TempDir(), "exported.yaml")

	out, err := runCommand(t, "", "export", "c1", "-o", outPath, "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Exported 1 context(s)")

	exported, err := store.Load(outPath)
	require.NoError(t, err)
	require.NotNil(t, exported.Context("c1"))
	require.Empty(t, exported.CurrentContext)
}

func TestAddCommand_Rename(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)
	source := writeTestKubeconfig(t, `apiVersion: v1
kind: Config
clusters:
- cluster: {server: https://new-a}
  name: a
users:
- name: ua
  user: {token: new}
contexts:
- context: {cluster: a, user: ua}
  name: c1
`)

	out, err := runCommand(t, "", "add", source, "--rename", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "c1 -> c1-imported")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	imported := cfg.Context("c1-imported")
	require.NotNil(t, imported)
	require.Equal(t, "a-imported", imported.Context.Cluster)
	require.Equal(t, "ua-imported", imported.Context.User)
}

func TestAddCommand_SkipReportsTip(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)
	source := writeTestKubeconfig(t, `apiVersion: v1
kind: Config
contexts:
- context: {cluster: a, user: ua}
  name: c1
`)

	out, err := runCommand(t, "", "add", source, "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Skipped context(s): c1")
	require.Contains(t, out, "Tip:")

	// Nothing changed, so no backup was written.
	_, err = os.Stat(paths.BackupPath(path))
	require.True(t, os.IsNotExist(err))
}

func TestAddCommand_SwitchSingleContext(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)
	source := writeTestKubeconfig(t, `apiVersion: v1
kind: Config
clusters:
- cluster: {server: https://dev}
  name: dev
users:
- name: dev-u
  user: {token: t}
contexts:
- context: {cluster: dev, user: dev-u}
  name: dev
`)

	out, err := runCommand(t, "", "add", source, "--switch", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Switched to context: dev")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.CurrentContext)
}

func TestAddCommand_SynthesizesContext(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)
	source := writeTestKubeconfig(t, `apiVersion: v1
kind: Config
clusters:
- cluster: {server: https://sandbox}
  name: sandbox-cluster
users:
- name: sandbox-user
  user: {token: t}
current-context: sandbox
`)

	out, err := runCommand(t, "", "add", source, "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Added context(s): sandbox")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	ctx := cfg.Context("sandbox")
	require.NotNil(t, ctx)
	require.Equal(t, "sandbox-cluster", ctx.Context.Cluster)
	require.Equal(t, "sandbox-user", ctx.Context.User)
	require.Equal(t, "default", ctx.Context.Namespace)
}

func TestEditCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows (uses shell script mock)")
	}
	path := writeTestKubeconfig(t, testKubeconfig)

	mock := filepath.Join(t.TempDir(), "editor.sh")
	script := `#!/bin/sh
cat > "$1" <<'EOF'
apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://a.example.com
  name: a
users:
- name: ua
  user:
    token: rotated
contexts:
- context:
    cluster: a
    user: ua
    namespace: edited
  name: c1
EOF
`
	require.NoError(t, os.WriteFile(mock, []byte(script), 0o755))
	t.Setenv("EDITOR", mock)
	t.Setenv("VISUAL", "")

	out, err := runCommand(t, "", "edit", "c1", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "Updated context: c1")

	cfg, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, "edited", cfg.Context("c1").Context.Namespace)
}

func TestEditCommand_Unchanged(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows (uses shell script mock)")
	}
	path := writeTestKubeconfig(t, testKubeconfig)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	t.Setenv("EDITOR", "true")
	t.Setenv("VISUAL", "")

	out, err := runCommand(t, "", "edit", "c1", "--kubeconfig", path)
	require.NoError(t, err)
	require.Contains(t, out, "No changes made")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestEditCommand_RejectsDanglingReference(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows (uses shell script mock)")
	}
	path := writeTestKubeconfig(t, testKubeconfig)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	mock := filepath.Join(t.TempDir(), "editor.sh")
	script := `#!/bin/sh
cat > "$1" <<'EOF'
apiVersion: v1
kind: Config
contexts:
- context:
    cluster: no-such-cluster
    user: no-such-user
  name: c1
EOF
`
	require.NoError(t, os.WriteFile(mock, []byte(script), 0o755))
	t.Setenv("EDITOR", mock)
	t.Setenv("VISUAL", "")

	_, err = runCommand(t, "", "edit", "c1", "--kubeconfig", path)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrValidation))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
	_, err = os.Stat(paths.BackupPath(path))
	require.True(t, os.IsNotExist(err))
}

func TestAddCommand_MissingFile(t *testing.T) {
	path := writeTestKubeconfig(t, testKubeconfig)

	_, err := runCommand(t, "", "add", filepath.Join(t.TempDir(), "absent"), "--kubeconfig", path)
	require.Error(t, err)
	require.Equal(t, errors.ExitSystem, errors.ExitCode(err))
}
