package readme

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

func mustPatterns(t *testing.T, exprs ...string) []*regexp.Regexp {
	t.Helper()
	patterns, err := CompilePatterns(exprs...)
	if err != nil {
		t.Fatalf("failed to compile patterns: %v", err)
	}
	return patterns
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("section ends before the next heading", func(t *testing.T) {
		t.Parallel()

		doc := "## Install\ntext\n## Usage\nmore"
		got := Extract(doc, mustPatterns(t, "install"), MaxExcerptLen)
		if got.Body != "## Install text" {
			t.Errorf("Body = %q, want %q", got.Body, "## Install text")
		}
		if got.HeadingLine != 0 {
			t.Errorf("HeadingLine = %d, want 0", got.HeadingLine)
		}
	})

	t.Run("no matching line returns empty", func(t *testing.T) {
		t.Parallel()

		got := Extract("# Title\nbody\n## Usage\nrun", mustPatterns(t, "install"), MaxExcerptLen)
		if got.HeadingLine != -1 || got.Body != "" {
			t.Errorf("expected empty section, got %+v", got)
		}
		if Excerpt("# Title", mustPatterns(t, "install")) != "" {
			t.Error("Excerpt should be empty without a match")
		}
	})

	t.Run("empty document returns empty", func(t *testing.T) {
		t.Parallel()

		if got := Extract("  \n ", mustPatterns(t, ".*"), MaxExcerptLen); got.HeadingLine != -1 {
			t.Errorf("expected empty section, got %+v", got)
		}
	})

	t.Run("patterns are case-insensitive", func(t *testing.T) {
		t.Parallel()

		got := Excerpt("# INSTALLATION\nrun make", mustPatterns(t, "installation"))
		if got != "# INSTALLATION run make" {
			t.Errorf("Excerpt = %q", got)
		}
	})

	t.Run("earliest matching line wins across patterns", func(t *testing.T) {
		t.Parallel()

		doc := "# Project\n## Quick start\nfirst\n## Install\nsecond"
		got := Extract(doc, mustPatterns(t, "install", "quick start"), MaxExcerptLen)
		if got.HeadingLine != 1 {
			t.Errorf("HeadingLine = %d, want 1", got.HeadingLine)
		}
		if got.Body != "## Quick start first" {
			t.Errorf("Body = %q", got.Body)
		}
	})

	t.Run("section runs to end without a following heading", func(t *testing.T) {
		t.Parallel()

		got := Excerpt("intro\n## Usage\nline one\nline two", mustPatterns(t, "usage"))
		if got != "## Usage line one line two" {
			t.Errorf("Excerpt = %q", got)
		}
	})

	t.Run("code fences and inline code are removed", func(t *testing.T) {
		t.Parallel()

		doc := "## Usage\nRun `tool --help` first.\n```sh\ntool run\n```\nThen   enjoy."
		got := Excerpt(doc, mustPatterns(t, "usage"))
		if got != "## Usage Run first. Then enjoy." {
			t.Errorf("Excerpt = %q", got)
		}
	})

	t.Run("unterminated fence swallows the rest", func(t *testing.T) {
		t.Parallel()

		doc := "## Usage\nBefore\n```go\nfunc main() {}\nAfter"
		got := Excerpt(doc, mustPatterns(t, "usage"))
		if got != "## Usage Before" {
			t.Errorf("Excerpt = %q", got)
		}
	})

	t.Run("long sections are cut to exactly the limit", func(t *testing.T) {
		t.Parallel()

		doc := "## Usage\n" + strings.Repeat("a", 1000)
		got := Excerpt(doc, mustPatterns(t, "usage"))
		if len(got) != MaxExcerptLen {
			t.Errorf("len = %d, want %d", len(got), MaxExcerptLen)
		}
	})

	t.Run("cut counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		doc := "## 使用方法\n" + strings.Repeat("漢", 500)
		got := Extract(doc, mustPatterns(t, "使用"), 10).Body
		if utf8.RuneCountInString(got) != 10 {
			t.Errorf("rune count = %d, want 10", utf8.RuneCountInString(got))
		}
		if !utf8.ValidString(got) {
			t.Error("cut produced invalid UTF-8")
		}
	})

	t.Run("CRLF documents are split into lines", func(t *testing.T) {
		t.Parallel()

		got := Excerpt("## Install\r\nstep\r\n## Usage\r\nrun", mustPatterns(t, "install"))
		if got != "## Install step" {
			t.Errorf("Excerpt = %q", got)
		}
	})
}

func TestCompilePatterns(t *testing.T) {
	t.Parallel()

	if _, err := CompilePatterns("("); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("fills each field from its section", func(t *testing.T) {
		t.Parallel()

		doc := strings.Join([]string{
			"# awesome-agent",
			"pip install awesome-agent is mentioned early",
			"## Overview",
			"An agent framework.",
			"## Features",
			"Fast and small.",
			"## Installation",
			"```bash",
			"pip install awesome-agent",
			"```",
			"Python 3.11+ required.",
			"## Usage",
			"Call `agent.run()` from your code.",
			"## Use cases",
			"Chat bots.",
		}, "\n")

		got := Summarize(doc, MaxExcerptLen)
		if got.Introduction != "## Overview An agent framework." {
			t.Errorf("Introduction = %q", got.Introduction)
		}
		if got.Meaning != "## Features Fast and small." {
			t.Errorf("Meaning = %q", got.Meaning)
		}
		if got.Install != "## Installation Python 3.11+ required." {
			t.Errorf("Install = %q", got.Install)
		}
		if got.Usage != "## Usage Call from your code." {
			t.Errorf("Usage = %q", got.Usage)
		}
		if got.Scenario != "## Use cases Chat bots." {
			t.Errorf("Scenario = %q", got.Scenario)
		}
	})

	t.Run("document without sections yields empty summary", func(t *testing.T) {
		t.Parallel()

		if got := Summarize("just a line of text", MaxExcerptLen); !got.IsEmpty() {
			t.Errorf("expected empty summary, got %+v", got)
		}
	})

	t.Run("chinese headings are recognised", func(t *testing.T) {
		t.Parallel()

		got := Summarize("## 安装\nnpm i demo\n## 快速开始\nnpx demo", MaxExcerptLen)
		if got.Install != "## 安装 npm i demo" {
			t.Errorf("Install = %q", got.Install)
		}
		if got.Usage != "## 快速开始 npx demo" {
			t.Errorf("Usage = %q", got.Usage)
		}
	})
}

func TestStripFrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("removes yaml front matter", func(t *testing.T) {
		t.Parallel()

		doc := "---\ntitle: demo\n# Install\n---\n## Usage\nrun it\n"
		body := StripFrontMatter(doc)
		if strings.Contains(body, "title: demo") {
			t.Errorf("front matter not removed: %q", body)
		}
		if got := Summarize(doc, MaxExcerptLen); got.Install != "" {
			t.Errorf("front matter comment leaked into Install: %q", got.Install)
		}
	})

	t.Run("document without front matter is unchanged", func(t *testing.T) {
		t.Parallel()

		doc := "# Title\n\nBody text\n"
		if got := StripFrontMatter(doc); got != doc {
			t.Errorf("StripFrontMatter() = %q, want %q", got, doc)
		}
	})
}
