package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	err := Init(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "forecast.csv"), []byte("year,revenue\n"), 0o644))

	hash, err := CommitAll(dir, "forecast: 2026-08-001", "Fincast", "runs@fincast.dev")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "forecast: 2026-08-001")
}

func TestHasChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	dirty, err := HasChanges(dir)
	require.NoError(t, err)
	assert.False(t, dirty, "fresh repo has nothing to commit")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("x\n"), 0o644))
	dirty, err = HasChanges(dir)
	require.NoError(t, err)
	assert.True(t, dirty, "untracked files count as changes")
}
