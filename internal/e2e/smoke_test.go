package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeProfileFixture(home))

	page := []string{"--page", "profile", "--record", "u1"}

	_, stderr, err := runEE(t, binaryPath, home, append([]string{"entry", "start", "identity"}, page...)...)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runEE(t, binaryPath, home, append([]string{"entry", "set", "identity", "name=Bob"}, page...)...)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runEE(t, binaryPath, home, append([]string{"entry", "save", "identity"}, page...)...)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Saved")

	stdout, stderr, err = runEE(t, binaryPath, home, append([]string{"page", "show"}, page...)...)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "name: Bob")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ee-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ee")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ee binary: %s", string(output))
	return binaryPath
}

func runEE(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeProfileFixture(home string) error {
	layoutsDir := filepath.Join(home, ".editable-entry", "layouts")
	if err := os.MkdirAll(layoutsDir, 0o700); err != nil {
		return err
	}

	profile := `title: User profile
record-type: user
nodes:
  - id: identity
    label: Identity
    view:
      - {name: name, kind: display}
    edit:
      - {name: name, required: true}
`
	if err := os.WriteFile(filepath.Join(layoutsDir, "profile.yaml"), []byte(profile), 0o600); err != nil {
		return err
	}

	records := `version = 1

[[records]]
id = "u1"
type = "user"

[records.attributes]
name = "Alice"
`

	return os.WriteFile(filepath.Join(home, ".editable-entry", "records.toml"), []byte(records), 0o600)
}
