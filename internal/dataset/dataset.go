// Package dataset decides where master datasets are read from and resolves
// a language pair into its deck profile.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/lingodeck/internal/domain"
	"github.com/conorfennell/lingodeck/internal/gitsource"
)

// Syncer fetches a repository into a local directory. gitsource.Sync
// satisfies it.
type Syncer func(ctx context.Context, url, localPath string, progress io.Writer) error

// Resolver turns configuration into a profile, syncing a remote dataset
// repository first when one is configured.
type Resolver struct {
	DataDir  string
	Repo     string
	Progress io.Writer
	Sync     Syncer
}

// Resolve returns the profile for lp. Progress snapshots always live in
// DataDir. Master datasets come from DataDir, or from a checkout of Repo
// under DataDir/repos when Repo is set.
func (r *Resolver) Resolve(ctx context.Context, lp domain.LanguagePair) (domain.Profile, error) {
	if err := os.MkdirAll(r.DataDir, os.ModePerm); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to create data directory %s: %w", r.DataDir, err)
	}

	masterDir := r.DataDir
	if r.Repo != "" {
		localRepoPath, err := gitURLToLocalPath(filepath.Join(r.DataDir, "repos"), r.Repo)
		if err != nil {
			return domain.Profile{}, err
		}

		syncer := r.Sync
		if syncer == nil {
			syncer = gitsource.Sync
		}
		if err := syncer(ctx, r.Repo, localRepoPath, r.Progress); err != nil {
			// A stale checkout is still usable.
			if _, statErr := os.Stat(localRepoPath); statErr != nil {
				return domain.Profile{}, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
			}
			slog.Warn("Error syncing dataset repo, using existing checkout", "url", r.Repo, "error", err)
		}
		masterDir = localRepoPath
	}

	profile := lp.Profile(masterDir, r.DataDir)
	slog.Debug("Resolved deck profile",
		"language", lp.String(),
		"master", profile.MasterPath,
		"progress", profile.ProgressPath,
	)
	return profile, nil
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
