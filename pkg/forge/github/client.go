package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/metabake/metabake/pkg/errors"
	"github.com/metabake/metabake/pkg/forge"
)

const (
	defaultAPIBase      = "https://api.github.com"
	defaultDownloadBase = "https://github.com"
)

// Client provides access to the GitHub API endpoints used by the pipeline.
type Client struct {
	*forge.Client

	// APIBase is the REST API root. Defaults to the public GitHub API.
	APIBase string

	// DownloadBase is the root for archive downloads and repository pages.
	// Defaults to the public github.com host.
	DownloadBase string
}

// NewClient creates a GitHub client whose requests are bounded by timeout.
// Requests are unauthenticated; the tool only touches public endpoints.
func NewClient(timeout time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	return &Client{
		Client:       forge.NewClient(timeout, headers),
		APIBase:      defaultAPIBase,
		DownloadBase: defaultDownloadBase,
	}
}

// RepoURL returns the canonical page URL for a repository.
func (c *Client) RepoURL(owner, repo string) string {
	return fmt.Sprintf("%s/%s/%s", c.DownloadBase, owner, repo)
}

// ArchiveURL returns the conventional source tarball URL for a release tag.
func (c *Client) ArchiveURL(owner, repo, tag string) string {
	return fmt.Sprintf("%s/%s/%s/archive/refs/tags/%s.tar.gz", c.DownloadBase, owner, repo, tag)
}

// LatestRelease looks up the most recent published release of a repository
// and returns its tag name. A response without a tag_name field fails with
// a PARSE_ERROR.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (string, error) {
	var data struct {
		TagName string `json:"tag_name"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.APIBase, owner, repo)
	if err := c.GetJSON(ctx, url, &data); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "no published release for %s/%s", owner, repo)
		}
		return "", err
	}
	if data.TagName == "" {
		return "", errors.New(errors.ErrCodeParse, "release response for %s/%s has no tag_name field", owner, repo)
	}
	return data.TagName, nil
}

// DownloadArchive fetches the source tarball for a release tag and returns
// its raw bytes. Any non-success status is a hard failure; there is no retry.
func (c *Client) DownloadArchive(ctx context.Context, owner, repo, tag string) ([]byte, error) {
	data, err := c.GetBytes(ctx, c.ArchiveURL(owner, repo, tag))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateMaintainers checks that every handle exists as a GitHub user.
// A 404 becomes a descriptive VALIDATION_FAILED error; any other non-success
// status propagates unchanged as a NETWORK_ERROR. The check is fail-fast.
func (c *Client) ValidateMaintainers(ctx context.Context, handles []string) error {
	for _, handle := range handles {
		url := fmt.Sprintf("%s/users/%s", c.APIBase, handle)
		status, err := c.StatusCode(ctx, url)
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusNotFound:
			return errors.New(errors.ErrCodeValidation,
				"%q could not be found as a GitHub user", handle)
		case status < 200 || status >= 300:
			return errors.New(errors.ErrCodeNetwork,
				"%s returned status %s", url, forge.StatusText(status))
		}
	}
	return nil
}
