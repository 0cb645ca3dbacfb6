package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	metaerrors "github.com/metabake/metabake/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(time.Second)
	c.APIBase = srv.URL
	c.DownloadBase = srv.URL
	return c, srv
}

func TestLatestRelease(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/proj/releases/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"tag_name":"v1.2.0","name":"Release 1.2.0"}`))
	}))

	tag, err := c.LatestRelease(context.Background(), "octo", "proj")
	if err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if tag != "v1.2.0" {
		t.Errorf("tag = %q, want %q", tag, "v1.2.0")
	}
}

func TestLatestReleaseMissingTag(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"untagged"}`))
	}))

	_, err := c.LatestRelease(context.Background(), "octo", "proj")
	if !metaerrors.Is(err, metaerrors.ErrCodeParse) {
		t.Errorf("error = %v, want PARSE_ERROR", err)
	}
}

func TestLatestReleaseNone(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.LatestRelease(context.Background(), "octo", "proj")
	if !metaerrors.Is(err, metaerrors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestDownloadArchive(t *testing.T) {
	payload := []byte("tarball bytes")
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/octo/proj/archive/refs/tags/v1.2.0.tar.gz" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write(payload)
	}))

	data, err := c.DownloadArchive(context.Background(), "octo", "proj", "v1.2.0")
	if err != nil {
		t.Fatalf("DownloadArchive: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("body = %q, want %q", data, payload)
	}
}

func TestDownloadArchiveFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.DownloadArchive(context.Background(), "octo", "proj", "v1.2.0")
	if !metaerrors.Is(err, metaerrors.ErrCodeNetwork) {
		t.Errorf("error = %v, want NETWORK_ERROR", err)
	}
}

func TestValidateMaintainers(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat":
			w.Write([]byte(`{"login":"octocat"}`))
		case "/users/ghost":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	t.Run("existing user passes silently", func(t *testing.T) {
		if err := c.ValidateMaintainers(context.Background(), []string{"octocat"}); err != nil {
			t.Errorf("ValidateMaintainers: %v", err)
		}
	})

	t.Run("404 becomes maintainer-not-found", func(t *testing.T) {
		err := c.ValidateMaintainers(context.Background(), []string{"octocat", "ghost"})
		if !metaerrors.Is(err, metaerrors.ErrCodeValidation) {
			t.Fatalf("error = %v, want VALIDATION_FAILED", err)
		}
		if !strings.Contains(err.Error(), "ghost") {
			t.Errorf("error should name the handle, got %q", err)
		}
	})

	t.Run("other statuses propagate as network errors", func(t *testing.T) {
		err := c.ValidateMaintainers(context.Background(), []string{"broken"})
		if !metaerrors.Is(err, metaerrors.ErrCodeNetwork) {
			t.Fatalf("error = %v, want NETWORK_ERROR", err)
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("error should carry the status, got %q", err)
		}
	})
}

func TestArchiveURL(t *testing.T) {
	c := NewClient(time.Second)
	want := "https://github.com/octo/proj/archive/refs/tags/v1.2.0.tar.gz"
	if got := c.ArchiveURL("octo", "proj", "v1.2.0"); got != want {
		t.Errorf("ArchiveURL = %q, want %q", got, want)
	}
}
