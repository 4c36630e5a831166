package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runFincast(t, "init", dir, "--company", "Acme Manufacturing")
	require.NoError(t, err)

	for _, d := range []string{"data", "forecasts", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runFincast(t, "init", dir, "--company", "Acme Manufacturing", "--ticker", "ACME")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "fincast.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Acme Manufacturing")
	assert.Contains(t, contents, "ticker: ACME")
	assert.Contains(t, contents, "n_forecast_years: 2")
	assert.Contains(t, contents, "lt_loan_years: 10")
	assert.Contains(t, contents, "pct_financing_with_debt: 0.7")
}

func TestInit_GitRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := runFincast(t, "init", dir, "--company", "Acme")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: Acme")
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runFincast(t, "init", dir, "--company", "Acme")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".fincast/")
}

func TestInit_RequiresCompany(t *testing.T) {
	dir := t.TempDir()
	_, err := runFincast(t, "init", dir)
	require.Error(t, err, "init without --company should fail")
}
