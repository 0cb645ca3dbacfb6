package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// githubNameRegex matches valid GitHub usernames and organization names:
// alphanumeric with interior hyphens, no leading or trailing hyphen.
var githubNameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9]){0,38}$`)

// repoNameRegex matches valid repository names.
var repoNameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// validateName applies the common safety rules shared by owners, repository
// names, and maintainer handles.
func validateName(name string, code Code, what string) error {
	if name == "" {
		return New(code, "%s cannot be empty", what)
	}

	if len(name) > 256 {
		return New(code, "%s too long (max 256 characters)", what)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", what)
		}
	}

	// Reject anything that could escape a URL path segment.
	for _, pattern := range []string{"..", "/", "\\", "\x00", " "} {
		if strings.Contains(name, pattern) {
			return New(code, "%s contains invalid characters: %q", what, pattern)
		}
	}

	return nil
}

// ValidateOwner validates a repository owner (user or organization) name.
func ValidateOwner(owner string) error {
	if err := validateName(owner, ErrCodeInvalidOwner, "owner"); err != nil {
		return err
	}
	if !githubNameRegex.MatchString(owner) {
		return New(ErrCodeInvalidOwner, "invalid owner name: %q", owner)
	}
	return nil
}

// ValidateRepo validates a repository name.
func ValidateRepo(repo string) error {
	if err := validateName(repo, ErrCodeInvalidRepo, "repository"); err != nil {
		return err
	}
	if !repoNameRegex.MatchString(repo) {
		return New(ErrCodeInvalidRepo, "invalid repository name: %q", repo)
	}
	return nil
}

// ValidateHandle validates a maintainer handle.
func ValidateHandle(handle string) error {
	if err := validateName(handle, ErrCodeInvalidHandle, "maintainer handle"); err != nil {
		return err
	}
	if !githubNameRegex.MatchString(handle) {
		return New(ErrCodeInvalidHandle, "invalid maintainer handle: %q", handle)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
