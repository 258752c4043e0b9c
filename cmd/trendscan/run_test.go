package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nao1215/trendscan/internal/config"
)

const fakeListing = `<html><body>
<article><h2><a href="/acme/agent">acme / agent</a></h2>
<p class="col-9 color-fg-muted">Build AI agents in Go</p></article>
<article><h2><a href="/tools/compiler">tools / compiler</a></h2>
<p class="col-9 color-fg-muted">A fast compiler</p></article>
</body></html>`

const fakeReadme = "# Agent\n\n## Installation\n\npip install agent\n\n## Usage\n\nagent run\n"

const fakeIndex = "# Daily reports\n\n## Latest Report\n\n- old\n\n## Contents\n\nrest\n"

// newFakeGitHub serves a trending page and the README of acme/agent on master.
func newFakeGitHub(t *testing.T, failListing bool) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/trending", func(w http.ResponseWriter, _ *http.Request) {
		if failListing {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fakeListing))
	})
	r.Get("/raw/{owner}/{name}/{branch}/README.md", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") == "agent" && chi.URLParam(r, "branch") == "master" {
			_, _ = w.Write([]byte(fakeReadme))
			return
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// writeTestConfig points a configuration file at the fake server.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trendscan.yaml")
	content := "trendingURL: " + baseURL + "/trending\n" +
		"rawBaseURL: " + baseURL + "/raw\n" +
		"readmeTimeout: 5s\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// executeRoot runs the root command and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

// TestBuildConfig tests configuration precedence.
// Not parallel: t.Setenv controls GITHUB_TOKEN.
func TestBuildConfig(t *testing.T) {
	t.Run("file values apply when flags are unset", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		path := filepath.Join(t.TempDir(), "trendscan.yaml")
		content := "keyword: llm\ntop: 3\nhtml: true\nreadme: false\nlistingTimeout: 30s\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", path, "--work-dir", t.TempDir()}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Keyword != "llm" || cfg.TopN != 3 {
			t.Errorf("expected file values, got keyword=%q top=%d", cfg.Keyword, cfg.TopN)
		}
		if !cfg.HTMLReport || cfg.Enrich {
			t.Errorf("expected html on and enrichment off, got html=%v enrich=%v", cfg.HTMLReport, cfg.Enrich)
		}
		if cfg.ListingTimeout != 30*time.Second {
			t.Errorf("expected 30s listing timeout, got %s", cfg.ListingTimeout)
		}
	})

	t.Run("flags override the file", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		path := filepath.Join(t.TempDir(), "trendscan.yaml")
		if err := os.WriteFile(path, []byte("keyword: llm\ntop: 3\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewRootCmd()
		args := []string{"--config", path, "--work-dir", t.TempDir(), "-k", "agent", "--top", "7", "--no-readme", "-v", "-q"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Keyword != "agent" || cfg.TopN != 7 {
			t.Errorf("expected flag values, got keyword=%q top=%d", cfg.Keyword, cfg.TopN)
		}
		if cfg.Enrich {
			t.Error("expected enrichment disabled")
		}
		if !cfg.Verbose || !cfg.Quiet {
			t.Errorf("expected verbose and quiet, got verbose=%v quiet=%v", cfg.Verbose, cfg.Quiet)
		}
	})

	t.Run("token from env file in work dir", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		workDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(workDir, ".env"), []byte("GITHUB_TOKEN=from-dotenv\n"), 0600); err != nil {
			t.Fatal(err)
		}
		cfgPath := filepath.Join(t.TempDir(), "trendscan.yaml")
		if err := os.WriteFile(cfgPath, []byte("keyword: ai\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", cfgPath, "--work-dir", workDir}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GitHubToken != "from-dotenv" {
			t.Errorf("expected token from .env, got %q", cfg.GitHubToken)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		cmd := NewRootCmd()
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatal(err)
		}

		_, err := buildConfig(cmd)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestRunReportCmd runs the whole command against a fake GitHub.
// Not parallel: t.Setenv controls GITHUB_TOKEN.
func TestRunReportCmd(t *testing.T) {
	t.Run("writes the report and updates the index", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		srv := newFakeGitHub(t, false)
		workDir := t.TempDir()
		indexPath := filepath.Join(workDir, "README.md")
		if err := os.WriteFile(indexPath, []byte(fakeIndex), 0600); err != nil {
			t.Fatal(err)
		}

		stdout, stderr, err := executeRoot(t,
			"--config", writeTestConfig(t, srv.URL),
			"--work-dir", workDir,
			"--html",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v (stderr: %s)", err, stderr)
		}

		reportPath := strings.TrimSpace(stdout)
		if filepath.Dir(reportPath) != filepath.Join(workDir, "reports") {
			t.Fatalf("unexpected report path %q", reportPath)
		}
		if !strings.HasSuffix(reportPath, ".md") {
			t.Errorf("expected a Markdown report, got %q", reportPath)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		report := string(content)
		for _, want := range []string{
			"GitHub AI Trending Daily - ",
			"1. [acme/agent](https://github.com/acme/agent)",
			"pip install agent",
		} {
			if !strings.Contains(report, want) {
				t.Errorf("report missing %q:\n%s", want, report)
			}
		}
		if strings.Contains(report, "tools/compiler") {
			t.Error("non-matching repository must not be listed")
		}

		htmlPath := strings.TrimSuffix(reportPath, ".md") + ".html"
		if _, err := os.Stat(htmlPath); err != nil {
			t.Errorf("expected HTML rendition: %v", err)
		}

		index, err := os.ReadFile(indexPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(index), "reports/"+filepath.Base(reportPath)) {
			t.Errorf("index does not link the report:\n%s", index)
		}
		if strings.Contains(string(index), "- old") {
			t.Errorf("old reference must be replaced:\n%s", index)
		}

		if !strings.Contains(stderr, "Matched") {
			t.Errorf("expected run summary on stderr, got %q", stderr)
		}
	})

	t.Run("quiet run without matches", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		srv := newFakeGitHub(t, false)
		workDir := t.TempDir()

		stdout, stderr, err := executeRoot(t,
			"--config", writeTestConfig(t, srv.URL),
			"--work-dir", workDir,
			"--keyword", "blockchain",
			"--quiet",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stderr != "" {
			t.Errorf("expected no stderr output in quiet mode, got %q", stderr)
		}

		content, err := os.ReadFile(strings.TrimSpace(stdout))
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), `No trending repositories matched keyword "blockchain" today.`) {
			t.Errorf("expected no-match notice:\n%s", content)
		}
	})

	t.Run("listing failure is fatal", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		srv := newFakeGitHub(t, true)
		workDir := t.TempDir()

		stdout, _, err := executeRoot(t,
			"--config", writeTestConfig(t, srv.URL),
			"--work-dir", workDir,
			"--quiet",
		)
		if err == nil {
			t.Fatal("expected error when the listing fails")
		}
		if stdout != "" {
			t.Errorf("expected no report path, got %q", stdout)
		}
		if _, statErr := os.Stat(filepath.Join(workDir, "reports")); !os.IsNotExist(statErr) {
			t.Error("no report directory may be created on listing failure")
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")

		_, _, err := executeRoot(t,
			"--config", writeTestConfig(t, "http://127.0.0.1:1"),
			"--work-dir", t.TempDir(),
			"--top", "0",
		)
		if !errors.Is(err, config.ErrInvalidTopN) {
			t.Errorf("expected ErrInvalidTopN, got %v", err)
		}
	})
}
