package pipeline

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/metabake/metabake/pkg/errors"
	"github.com/metabake/metabake/pkg/forge/github"
)

// fixtureTarball builds the release archive for the test repository.
func fixtureTarball(t *testing.T, setupVersion string) []byte {
	t.Helper()

	files := map[string]string{
		"proj-1.2.0/LICENSE":          "MIT License\n",
		"proj-1.2.0/requirements.txt": "requests>=2.0\npyyaml\n",
		"proj-1.2.0/setup.py": fmt.Sprintf(
			"setup(\n    name=\"samplepkg\",\n    version=%q,\n    url=\"__HOME__\",\n    description=\"A sample package\",\n)\n",
			setupVersion),
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name: name, Typeflag: tar.TypeReg, Size: int64(len(content)), Mode: 0o644,
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// newFixtureForge serves the GitHub API and download endpoints the pipeline
// touches for the octo/proj fixture repository.
func newFixtureForge(t *testing.T, setupVersion string) *github.Client {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/proj/releases/latest":
			fmt.Fprint(w, `{"tag_name":"v1.2.0"}`)
		case "/octo/proj/archive/refs/tags/v1.2.0.tar.gz":
			// The setup.py homepage points back at this server so URL
			// validation stays local.
			data := fixtureTarball(t, setupVersion)
			data = rebuildWithHome(t, data, srv.URL+"/home")
			w.Write(data)
		case "/users/octocat":
			fmt.Fprint(w, `{"login":"octocat"}`)
		case "/users/ghost":
			w.WriteHeader(http.StatusNotFound)
		case "/octo/proj", "/home", "/docs":
			fmt.Fprint(w, "ok")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := github.NewClient(time.Second)
	c.APIBase = srv.URL
	c.DownloadBase = srv.URL
	return c
}

// rebuildWithHome substitutes the placeholder homepage in the fixture
// tarball. Rewriting the archive keeps the homepage a live URL on the test
// server without hardcoding the server address into fixtureTarball.
func rebuildWithHome(t *testing.T, data []byte, home string) []byte {
	t.Helper()

	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	tr := tar.NewReader(gzr)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for {
		hdr, err := tr.Next()
		if err != nil {
			break
		}
		var content bytes.Buffer
		if _, err := content.ReadFrom(tr); err != nil {
			t.Fatal(err)
		}
		body := strings.ReplaceAll(content.String(), "__HOME__", home)
		hdr.Size = int64(len(body))
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRunEndToEnd(t *testing.T) {
	var logBuf bytes.Buffer
	logger := log.NewWithOptions(&logBuf, log.Options{Level: log.WarnLevel})

	runner := NewRunner(newFixtureForge(t, "1.2.0"), logger)
	result, err := runner.Run(context.Background(), Options{
		Owner:       "octo",
		Repo:        "proj",
		Maintainers: []string{"octocat"},
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Tag != "v1.2.0" {
		t.Errorf("Tag = %q, want v1.2.0", result.Tag)
	}
	if result.License.ID != "MIT" {
		t.Errorf("License = %q, want MIT", result.License.ID)
	}
	if result.Metadata.Name != "samplepkg" {
		t.Errorf("Metadata.Name = %q, want samplepkg", result.Metadata.Name)
	}

	for _, want := range []string{
		"{% set name = 'samplepkg' %}",
		"{% set version = '1.2.0' %}",
		"license: MIT",
		"license_file: LICENSE",
		"- requests>=2.0",
		"- pyyaml",
		"- samplepkg",
		"/archive/refs/tags/v1.2.0.tar.gz",
		"summary: A sample package",
	} {
		if !strings.Contains(result.Manifest, want) {
			t.Errorf("manifest missing %q:\n%s", want, result.Manifest)
		}
	}

	if strings.Contains(logBuf.String(), "may not correspond") {
		t.Errorf("no version-mismatch warning expected, log: %s", logBuf.String())
	}
}

func TestRunVersionMismatchWarns(t *testing.T) {
	var logBuf bytes.Buffer
	logger := log.NewWithOptions(&logBuf, log.Options{Level: log.WarnLevel})

	runner := NewRunner(newFixtureForge(t, "1.1.0"), logger)
	result, err := runner.Run(context.Background(), Options{
		Owner:       "octo",
		Repo:        "proj",
		Maintainers: []string{"octocat"},
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("Run should succeed despite mismatch: %v", err)
	}

	if !strings.Contains(logBuf.String(), "may not correspond") {
		t.Errorf("expected a version-mismatch warning, log: %s", logBuf.String())
	}
	if !strings.Contains(result.Manifest, "{% set version = '1.1.0' %}") {
		t.Error("manifest should still render with the declared version")
	}
}

func TestRunUnknownMaintainerAborts(t *testing.T) {
	runner := NewRunner(newFixtureForge(t, "1.2.0"), log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	_, err := runner.Run(context.Background(), Options{
		Owner:       "octo",
		Repo:        "proj",
		Maintainers: []string{"ghost"},
	})
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("error = %v, want VALIDATION_FAILED", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should name the maintainer, got %q", err)
	}
}

func TestRunNoReleaseAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := github.NewClient(time.Second)
	c.APIBase = srv.URL
	c.DownloadBase = srv.URL

	runner := NewRunner(c, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	_, err := runner.Run(context.Background(), Options{
		Owner:       "octo",
		Repo:        "proj",
		Maintainers: []string{"octocat"},
	})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}
