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

const stashPayload = `{"quadLayout": true, "items": [
  {"w": 1, "h": 1, "x": 0, "y": 0, "ilvl": 70, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Amulets/Amulet1.png"},
  {"w": 2, "h": 1, "x": 1, "y": 0, "ilvl": 68, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Belts/Belt1.png"},
  {"w": 2, "h": 3, "x": 0, "y": 1, "ilvl": 80, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Armours/BodyArmours/Body1.png"},
  {"w": 2, "h": 2, "x": 2, "y": 1, "ilvl": 66, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Armours/Boots/Boots1.png"},
  {"w": 2, "h": 2, "x": 4, "y": 1, "ilvl": 77, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Armours/Gloves/Gloves1.png"},
  {"w": 2, "h": 2, "x": 6, "y": 1, "ilvl": 62, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Armours/Helmets/Helmet1.png"},
  {"w": 1, "h": 1, "x": 8, "y": 0, "ilvl": 71, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Rings/Ring1.png"},
  {"w": 1, "h": 1, "x": 9, "y": 0, "ilvl": 84, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Rings/Ring2.png"},
  {"w": 1, "h": 3, "x": 20, "y": 20, "ilvl": 64, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Weapons/OneHandWeapons/Claws/Claw1.png"},
  {"w": 2, "h": 2, "x": 22, "y": 20, "ilvl": 79, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Armours/Shields/Shield1.png"}
]}`

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	snapshotPath := filepath.Join(home, "stash.json")
	require.NoError(t, os.WriteFile(snapshotPath, []byte(stashPayload), 0o600))

	_, stderr, err := runCRH(t, binaryPath, home, nil,
		"session", "set",
		"--account", "exile",
		"--league", "Standard",
		"--cookie", "0123456789abcdef",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	env := []string{"CRH_SNAPSHOT_FILE=" + snapshotPath}

	stdout, stderr, err := runCRH(t, binaryPath, home, env, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Total bundles: 1")

	stdout, stderr, err = runCRH(t, binaryPath, home, env, "recipe")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Bundle (10 items, quad stash)")
	assert.Contains(t, stdout, "One-hand/Shield")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "crh-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/crh")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build crh binary: %s", string(output))
	return binaryPath
}

func runCRH(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "PASSWORD_STORE_DIR="+filepath.Join(home, "no-pass-store"))
	cmd.Env = append(cmd.Env, env...)

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
