package readme

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxExcerptLen is the default number of characters kept in an excerpt.
const MaxExcerptLen = 400

// headingMarker starts every Markdown ATX heading line.
const headingMarker = "#"

var (
	// fencedBlock matches a fenced code block. A fence without a closing
	// delimiter runs to the end of the text, so everything after an
	// unterminated fence is dropped from the excerpt.
	fencedBlock = regexp.MustCompile("(?s)```.*?(?:```|\\z)")

	// inlineCode matches a single-backtick code span.
	inlineCode = regexp.MustCompile("`[^`]*`")

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Section is a located and cleaned README section.
type Section struct {
	// HeadingLine is the zero-based line index of the matching line,
	// or -1 when nothing matched.
	HeadingLine int

	// Body is the cleaned, length-bounded section text.
	Body string
}

// Extract locates the first line matching any pattern and returns the text
// from that line up to the next heading, cleaned and cut to maxLen runes.
//
// The earliest matching line in document order wins, even when a later
// section would give a better excerpt. A non-positive maxLen disables the cut.
func Extract(doc string, patterns []*regexp.Regexp, maxLen int) Section {
	notFound := Section{HeadingLine: -1}
	if strings.TrimSpace(doc) == "" || len(patterns) == 0 {
		return notFound
	}

	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		if matchAny(patterns, line) {
			start = i
			break
		}
	}
	if start < 0 {
		return notFound
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], headingMarker) {
			end = i
			break
		}
	}

	return Section{
		HeadingLine: start,
		Body:        truncate(clean(strings.Join(lines[start:end], "\n")), maxLen),
	}
}

// Excerpt is Extract with the default length cap, returning only the body.
// It returns "" when no line matches or doc is empty.
func Excerpt(doc string, patterns []*regexp.Regexp) string {
	return Extract(doc, patterns, MaxExcerptLen).Body
}

// CompilePatterns compiles case-insensitive patterns in the given order.
func CompilePatterns(exprs ...string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// mustCompilePatterns is CompilePatterns for package-level pattern sets.
func mustCompilePatterns(exprs ...string) []*regexp.Regexp {
	patterns, err := CompilePatterns(exprs...)
	if err != nil {
		panic(err)
	}
	return patterns
}

func matchAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// clean removes code and squeezes whitespace.
func clean(text string) string {
	text = strings.TrimSpace(text)
	text = fencedBlock.ReplaceAllString(text, "")
	text = inlineCode.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// truncate hard-cuts s to maxLen runes. No ellipsis is added.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}
