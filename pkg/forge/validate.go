package forge

import (
	"context"
	"net/http"

	"github.com/metabake/metabake/pkg/errors"
)

// ValidateURLs checks that every non-empty URL in urls answers a GET with
// status 200. Empty strings are skipped without issuing a request (several
// recipe URL fields are optional). The check is fail-fast: the first
// non-200 URL aborts with a VALIDATION_FAILED error naming the URL and the
// observed status.
func (c *Client) ValidateURLs(ctx context.Context, urls []string) error {
	for _, url := range urls {
		if url == "" {
			continue
		}
		status, err := c.StatusCode(ctx, url)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return errors.New(errors.ErrCodeValidation,
				"URL %s returned non-200 status: %s", url, StatusText(status))
		}
	}
	return nil
}
