package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubDir("data")
	require.NoError(t, err)

	// t.TempDir may sit behind a symlink (macOS /var -> /private/var)
	want, err := filepath.EvalSymlinks(tmp)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(want, "data"), gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureSubDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubDir("data")
	require.NoError(t, err)

	second, err := EnsureSubDir("data")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubDir_AbsolutePath(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "ledger")

	got, err := EnsureSubDir(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureSubDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("data", []byte("x"), 0o660))

	_, err := EnsureSubDir("data")
	require.Error(t, err, "should fail when a file exists with the same name")
}

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestDecodeConfigFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name":"json","count":1}`), 0o600))

	yamlPath := filepath.Join(dir, "cfg.YAML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: yaml\ncount: 2\n"), 0o600))

	var s sample
	require.NoError(t, DecodeConfigFile(jsonPath, &s))
	assert.Equal(t, sample{Name: "json", Count: 1}, s)

	require.NoError(t, DecodeConfigFile(yamlPath, &s))
	assert.Equal(t, sample{Name: "yaml", Count: 2}, s)
}

func TestDecodeConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	var s sample
	assert.Error(t, DecodeConfigFile(filepath.Join(dir, "missing.json"), &s))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
	assert.ErrorContains(t, DecodeConfigFile(bad, &s), "parse")
}
