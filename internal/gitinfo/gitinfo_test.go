package gitinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestBrowsableURL_ScpSyntax(t *testing.T) {
	require.Equal(t,
		"https://github.com/acme/widget",
		browsableURL("git@github.com:acme/widget.git"))
}

func TestBrowsableURL_SSHScheme(t *testing.T) {
	require.Equal(t,
		"https://git.example.com/acme/widget",
		browsableURL("ssh://git@git.example.com/acme/widget.git"))
}

func TestBrowsableURL_HTTPSPassesThrough(t *testing.T) {
	require.Equal(t,
		"https://github.com/acme/widget",
		browsableURL("https://github.com/acme/widget.git"))
}

func TestBrowseURL_BlobPath(t *testing.T) {
	info := &Info{RemoteURL: "https://github.com/acme/widget", Revision: "abc123"}
	require.Equal(t, "https://github.com/acme/widget/blob/abc123", info.BrowseURL())
}

func TestResolve_NoRepository(t *testing.T) {
	_, err := Resolve(t.TempDir())
	require.Error(t, err)
}

func TestResolve_RemoteAndRevision(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widget.git"},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("widget\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com"},
	})
	require.NoError(t, err)

	info, err := Resolve(dir)
	require.NoError(t, err)
	require.Equal(t, "https://github.com/acme/widget", info.RemoteURL)
	require.Equal(t, hash.String(), info.Revision)
}

func TestResolve_NoOriginRemote(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = Resolve(dir)
	require.ErrorIs(t, err, ErrNoRemote)
}
