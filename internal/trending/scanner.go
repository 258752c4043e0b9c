package trending

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/trendscan/internal/model"
)

// HTML names the scanner reacts to.
const (
	// listingHeading is the heading element that wraps repository anchors.
	listingHeading = "h2"

	htmlElementAnchor    = "a"
	htmlElementParagraph = "p"

	// descriptionClass marks the paragraph that carries a repository description.
	descriptionClass = "col-9"
)

// whitespaceRun matches any run of whitespace for collapsing.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Scanner rebuilds repository records from a stream of tag events.
//
// It keeps just enough nesting state to know whether an anchor sits inside a
// listing heading and whether text belongs to a description paragraph.
// A Scanner is owned by one document scan and must not be shared between
// goroutines.
type Scanner struct {
	// inHeading is set while a listing heading is open.
	// Nested headings are not tracked; the last open/close wins.
	inHeading bool

	// inAnchor is set while a candidate repository anchor is open.
	inAnchor bool

	// inDescription is set while a description paragraph is open.
	inDescription bool

	// href is the link of the open candidate anchor.
	href string

	// anchorText accumulates text events of the open candidate anchor.
	anchorText []string

	// descText accumulates text events of the open description paragraph.
	descText []string

	// records holds the repositories in document order.
	records []model.Repository
}

// NewScanner returns a Scanner ready for one document.
func NewScanner() *Scanner {
	return &Scanner{
		records: make([]model.Repository, 0),
	}
}

// StartTag handles an opening tag and its attributes.
func (s *Scanner) StartTag(name string, attrs []html.Attribute) {
	if name == listingHeading {
		s.inHeading = true
	}

	if s.inHeading && name == htmlElementAnchor {
		if href, ok := getAttr(attrs, "href"); ok && isRepositoryPath(href) {
			s.inAnchor = true
			s.href = href
			s.anchorText = s.anchorText[:0]
		}
	}

	if name == htmlElementParagraph {
		if class, _ := getAttr(attrs, "class"); strings.Contains(class, descriptionClass) {
			s.inDescription = true
			s.descText = s.descText[:0]
		}
	}
}

// Text handles a text chunk. The same chunk may belong to both an anchor and
// a description when both are open.
func (s *Scanner) Text(text string) {
	if s.inAnchor {
		s.anchorText = append(s.anchorText, text)
	}
	if s.inDescription {
		s.descText = append(s.descText, text)
	}
}

// EndTag handles a closing tag.
func (s *Scanner) EndTag(name string) {
	if name == htmlElementAnchor && s.inAnchor {
		display := collapse(s.anchorText)
		if id := strings.TrimLeft(s.href, "/"); id != "" {
			s.records = append(s.records, model.Repository{
				Name:        id,
				DisplayText: display,
			})
		}
		s.inAnchor = false
		s.href = ""
		s.anchorText = s.anchorText[:0]
	}

	if name == listingHeading {
		s.inHeading = false
	}

	if name == htmlElementParagraph && s.inDescription {
		desc := collapse(s.descText)
		// Only the first description paragraph after a record counts.
		if n := len(s.records); n > 0 && s.records[n-1].Description == "" {
			s.records[n-1].Description = desc
		}
		s.inDescription = false
		s.descText = s.descText[:0]
	}
}

// Records returns the repositories scanned so far, in document order.
func (s *Scanner) Records() []model.Repository {
	return s.records
}

// isRepositoryPath reports whether href looks like "/owner/name".
// Top-level and navigation links such as "/trending" have a single slash.
func isRepositoryPath(href string) bool {
	return strings.HasPrefix(href, "/") && strings.Count(href, "/") >= 2
}

// collapse joins text pieces and squeezes whitespace runs into single spaces.
func collapse(parts []string) string {
	joined := strings.Join(parts, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(joined, " "))
}

// getAttr retrieves an attribute value by key.
func getAttr(attrs []html.Attribute, key string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
