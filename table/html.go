package table

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ============================================================================
// HTML EXTRACTOR — First qualifying data table on a page
// ============================================================================
// Wikipedia-style pages carry many tables (infoboxes, navboxes). Only a
// table whose class marks it as tabular data qualifies. The first row is
// the header; every cell is cleaned of bracketed footnote markers and
// collapsed whitespace; short rows are padded to the header width.
// ============================================================================

// dataTableClasses marks a <table> as actual tabular data rather than
// page furniture.
var dataTableClasses = regexp.MustCompile(`(?i)(^|\s)(wikitable|datatable|data-table|sortable)(\s|$)`)

// footnoteMarkers matches bracketed citation markers: [1], [a], [note 3].
var footnoteMarkers = regexp.MustCompile(`\[[^\[\]]*\]`)

// innerWhitespace collapses runs of whitespace (including newlines left by
// nested markup) to a single space.
var innerWhitespace = regexp.MustCompile(`\s+`)

// FromHTML extracts the first data table from an HTML document.
// Returns ExtractionError(NoTableFound) when no qualifying table exists.
func FromHTML(data []byte) (*Table, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ExtractionError{Kind: BadInput, Source: "html", Err: err}
	}

	node := findDataTable(doc)
	if node == nil {
		return nil, &ExtractionError{Kind: NoTableFound, Source: "html"}
	}

	trs := collectRows(node)
	if len(trs) == 0 {
		return nil, &ExtractionError{Kind: NoHeader, Source: "html"}
	}

	headers := cellTexts(trs[0])
	if len(headers) == 0 {
		return nil, &ExtractionError{Kind: NoHeader, Source: "html"}
	}

	cols := dedupeColumns(headers)

	rows := make([]map[string]string, 0, len(trs)-1)
	for _, tr := range trs[1:] {
		cells := cellTexts(tr)
		// Short rows are padded, never dropped. Extra cells are ignored.
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			if i < len(cells) {
				row[c] = cells[i]
			} else {
				row[c] = ""
			}
		}
		rows = append(rows, row)
	}

	return New(cols, rows), nil
}

// findDataTable walks the document and returns the first <table> whose
// class attribute marks it as a data table.
func findDataTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		if dataTableClasses.MatchString(attrValue(n, "class")) {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findDataTable(c); found != nil {
			return found
		}
	}
	return nil
}

// collectRows gathers the <tr> elements of a table, descending through
// thead/tbody wrappers but not into nested tables.
func collectRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				rows = append(rows, c)
			case "thead", "tbody", "tfoot":
				walk(c)
			case "table":
				// nested table — skip
			}
		}
	}
	walk(table)
	return rows
}

// cellTexts returns the cleaned text of each th/td cell in a row.
func cellTexts(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, CleanCell(nodeText(c)))
		}
	}
	return cells
}

// nodeText concatenates all text descendants of a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// CleanCell strips footnote markers and collapses internal whitespace.
// "Titanic [# 2][note 1]\n" → "Titanic".
func CleanCell(s string) string {
	s = footnoteMarkers.ReplaceAllString(s, "")
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
