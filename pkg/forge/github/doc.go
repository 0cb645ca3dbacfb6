// Package github provides the GitHub API client used by the recipe pipeline.
//
// The client covers the three endpoints the pipeline needs: the latest
// published release of a repository, the conventional source tarball
// download URL for a tag, and user lookups for maintainer validation.
// Only public, unauthenticated endpoints are used.
package github
