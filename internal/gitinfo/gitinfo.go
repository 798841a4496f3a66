// Package gitinfo derives documentation source-link information from the
// local git repository: the browsable remote URL and the checked-out
// revision. Best-effort; projects without a repository simply get no links.
package gitinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

var (
	// ErrNoRemote indicates the repository has no origin remote to link to.
	ErrNoRemote = errors.New("repository has no origin remote")
)

// Info describes where sources can be browsed remotely.
type Info struct {
	// RemoteURL is the https form of the origin remote, without .git suffix.
	RemoteURL string
	// Revision is the HEAD commit hash.
	Revision string
}

// Resolve opens the repository at (or above) dir and extracts remote and
// revision information.
func Resolve(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRemote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, ErrNoRemote
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	return &Info{
		RemoteURL: browsableURL(urls[0]),
		Revision:  head.Hash().String(),
	}, nil
}

// BrowseURL returns the web URL for a source tree at the resolved revision,
// following the blob-path convention shared by the major forges.
func (i *Info) BrowseURL() string {
	return i.RemoteURL + "/blob/" + i.Revision
}

// browsableURL converts a git remote URL to its https browser form:
// git@host:org/repo.git -> https://host/org/repo.
func browsableURL(remote string) string {
	url := strings.TrimSuffix(remote, ".git")
	if strings.HasPrefix(url, "git@") {
		url = strings.TrimPrefix(url, "git@")
		url = strings.Replace(url, ":", "/", 1)
		return "https://" + url
	}
	if strings.HasPrefix(url, "ssh://") {
		url = strings.TrimPrefix(url, "ssh://")
		url = strings.TrimPrefix(url, "git@")
		return "https://" + url
	}
	return url
}
