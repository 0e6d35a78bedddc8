package index

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/eisbock/stockaid/table"
)

// DecodeWikiTable extracts the wikitext from the edit box of a Wikipedia
// edit page and parses the first wikitable in it into a Table.
func DecodeWikiTable(body []byte) (*table.Table, error) {
	text, err := scrapeEditBox(body)
	if err != nil {
		return nil, err
	}
	return parseWikiTable(text)
}

// scrapeEditBox returns the text content of the <textarea id="wpTextbox1">
// element that holds the page source on an edit page.
func scrapeEditBox(body []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("index: parsing HTML: %w", err)
	}

	box := findEditBox(doc)
	if box == nil {
		return "", fmt.Errorf("index: page has no edit box")
	}

	var sb strings.Builder
	for n := box.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	}
	return sb.String(), nil
}

func findEditBox(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "textarea" {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == "wpTextbox1" {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findEditBox(c); found != nil {
			return found
		}
	}
	return nil
}

// parseWikiTable parses wikitext table markup. Rows are separated by
// "\n|-"; the first row holds column names with cells introduced by "!",
// later rows hold data with cells introduced by "|". Rows are padded or
// truncated to the header width.
func parseWikiTable(text string) (*table.Table, error) {
	start := strings.Index(text, "wikitable")
	if start < 0 {
		start = 0
	}
	if stop := indexFrom(text, "\n|}", start); stop >= 0 {
		text = text[:stop]
	}

	var tbl *table.Table
	end := indexFrom(text, "\n|-", start)
	for end >= 0 {
		start = end + 3
		end = indexFrom(text, "\n|-", start)
		var row string
		if end < 0 {
			row = text[start:]
		} else {
			row = text[start:end]
		}

		if tbl == nil {
			// Header cells start on their own "\n!" lines; folding
			// newlines into "!" turns every cell marker into "!!".
			row = strings.ReplaceAll(row, "\n", "!")
			tbl = table.New(splitCells(row, "!!")...)
			continue
		}

		row = strings.ReplaceAll(row, "\n", "|")
		cells := splitCells(row, "||")
		if len(cells) == 0 {
			continue
		}
		for len(cells) < len(tbl.Columns) {
			cells = append(cells, "")
		}
		if err := tbl.Append(cells[:len(tbl.Columns)]...); err != nil {
			return nil, err
		}
	}

	if tbl == nil || len(tbl.Columns) == 0 {
		return nil, fmt.Errorf("index: page has no wikitable")
	}
	return tbl, nil
}

func indexFrom(s, sub string, from int) int {
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// splitCells extracts the cell values of one row; the text before the
// first delimiter is the row marker and is dropped.
func splitCells(row, delim string) []string {
	var cells []string
	end := strings.Index(row, delim)
	for end >= 0 {
		start := end + len(delim)
		end = indexFrom(row, delim, start)
		var cell string
		if end < 0 {
			cell = row[start:]
		} else {
			cell = row[start:end]
		}
		cells = append(cells, strings.TrimSpace(stripMarkup(cell)))
	}
	return cells
}

// stripMarkup removes the wiki markup wrapping a cell value:
//
//	[[key]] or [[key|text]]   internal link, keep text (or key)
//	[url text]                external link, keep the url
//	{{template|key}}          template, keep the key
func stripMarkup(s string) string {
	key, text := unwrap(s, "[[", "]]", '|')
	if text != "" {
		s = text
	} else {
		s = key
	}

	key, _ = unwrap(s, "[", "]", ' ')
	s = key

	key, text = unwrap(s, "{{", "}}", '|')
	if text != "" {
		return text
	}
	return key
}

// unwrap extracts the content between d1 and d2 and splits it at the first
// d3, returning the parts before and after it.
func unwrap(s, d1, d2 string, d3 byte) (string, string) {
	start := strings.Index(s, d1)
	if start < 0 {
		return s, ""
	}
	start += len(d1)
	end := indexFrom(s, d2, start)
	if end < 0 {
		return s, ""
	}
	s = s[start:end]
	if i := strings.IndexByte(s, d3); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
