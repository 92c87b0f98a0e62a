package htmlutil

import (
	"bytes"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FindClassPattern selects all elements of the given tag whose class
// attribute matches pattern. Class attributes on the sites we scrape carry
// extra tokens, so matching is substring-style rather than exact.
func FindClassPattern(doc *goquery.Document, tag string, pattern *regexp.Regexp) *goquery.Selection {
	return doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pattern.MatchString(s.AttrOr("class", ""))
	})
}
