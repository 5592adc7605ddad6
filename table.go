package sefazwatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// DefaultTableClass is the class attribute of the status table.
const DefaultTableClass = "tabelaResultado"

// ExtractRows returns the rows of every table whose class attribute equals
// class, in document order.
//
// Each text node inside a row becomes one cell, trimmed and normalised to
// NFC. Text nodes made only of whitespace become empty cells, so cell
// positions follow the markup of the page. Rows without any text node are
// dropped. The first row is usually the table header; removing it is up to
// the caller.
//
// Malformed markup is parsed on a best-effort basis. The returned error
// reports a failure to read r, never a markup problem; a page without the
// table yields no rows and no error.
func ExtractRows(r io.Reader, class string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var rows []Row
	doc.Find("table").
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, ok := s.Attr("class")
			return ok && v == class
		}).
		Find("tr").
		Each(func(_ int, tr *goquery.Selection) {
			if cells := rowCells(tr.Get(0)); len(cells) > 0 {
				rows = append(rows, cells)
			}
		})

	return rows, nil
}

// rowCells collects the text nodes under a tr element. Nested rows are
// skipped here since Find("tr") visits them on their own.
func rowCells(tr *html.Node) Row {
	var cells Row

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				cells = append(cells, norm.NFC.String(strings.TrimSpace(c.Data)))
			case c.Type == html.ElementNode && c.DataAtom == atom.Tr:
				continue
			default:
				walk(c)
			}
		}
	}
	walk(tr)

	return cells
}
