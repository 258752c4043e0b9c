package trending

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"

	"github.com/nao1215/trendscan/internal/model"
)

// Parse tokenizes a trending listing page and returns its repositories.
//
// Design decision: We drive a streaming tokenizer instead of building a DOM
// with html.Parse because:
//  1. The listing only needs a handful of flags, not a tree
//  2. The tree builder would re-parent misnested tags and change event order
//  3. Unbalanced markup simply yields fewer records instead of an error
//
// Only read errors from r are returned.
func Parse(r io.Reader) ([]model.Repository, error) {
	s := NewScanner()
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return s.Records(), err
			}
			return s.Records(), nil
		case html.StartTagToken:
			tok := z.Token()
			s.StartTag(tok.Data, tok.Attr)
		case html.SelfClosingTagToken:
			tok := z.Token()
			s.StartTag(tok.Data, tok.Attr)
			s.EndTag(tok.Data)
		case html.EndTagToken:
			tok := z.Token()
			s.EndTag(tok.Data)
		case html.TextToken:
			s.Text(z.Token().Data)
		case html.CommentToken, html.DoctypeToken:
			// ignored
		}
	}
}

// ParseString is a convenience wrapper around Parse for in-memory pages.
func ParseString(page string) ([]model.Repository, error) {
	return Parse(strings.NewReader(page))
}

// Filter keeps repositories whose identifier or description contains keyword.
// Matching uses Unicode case folding; an empty keyword keeps everything.
// The input order is preserved.
func Filter(repos []model.Repository, keyword string) []model.Repository {
	needle := cases.Fold().String(keyword)

	matched := make([]model.Repository, 0, len(repos))
	for _, repo := range repos {
		haystack := cases.Fold().String(repo.Name + " " + repo.Description)
		if strings.Contains(haystack, needle) {
			matched = append(matched, repo)
		}
	}
	return matched
}
