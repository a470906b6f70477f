package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Missing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	percent := 50.0
	retries := 2
	in := File{Domain: "school.talentlms.com", RatePercent: &percent, RetryCount: &retries, Timeout: "30s"}

	require.NoError(t, SaveFile(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFilePath(t *testing.T) {
	t.Setenv(envConfigPath, "/tmp/custom.json")
	p, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", p)

	t.Setenv(envConfigPath, "")
	original := userConfigDir
	userConfigDir = func() (string, error) { return "/cfg", nil }
	t.Cleanup(func() { userConfigDir = original })

	p, err = FilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "talentlms", "config.json"), p)
}
