// Package extract turns markup into plain text suitable for summarization.
package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MaxHTMLSize bounds how much markup is read from a single document.
	MaxHTMLSize = 10 * 1024 * 1024 // 10MB

	// nonContentSelector matches elements whose text is never visible prose.
	nonContentSelector = "head, script, style, noscript, template, svg, iframe"
)

// FromHTML parses an HTML document and returns its visible text with
// whitespace collapsed. Text of adjacent elements is separated by a space so
// sentences in sibling blocks do not run together.
//
// Example:
//
//	text, err := extract.FromHTML(strings.NewReader("<p>First.</p><p>Second.</p>"))
//	// text == "First. Second."
func FromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(r, MaxHTMLSize))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find(nonContentSelector).Remove()

	var b strings.Builder
	collectText(doc.Find("body"), &b)

	return strings.Join(strings.Fields(b.String()), " "), nil
}

func collectText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			b.WriteString(s.Text())
			b.WriteByte(' ')
			return
		}
		collectText(s, b)
	})
}
