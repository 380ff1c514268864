// backend/llm/plaintext.go
package llm

import (
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// Inline tags models put in prose. Anything else is left alone.
	formattingTagRegex = regexp.MustCompile(`(?i)<\s*/?\s*(?:br|p|b|i|em|strong|u)\s*/?\s*>`)
	lineBreakRegex     = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>`)
	paragraphEndRegex  = regexp.MustCompile(`(?i)<\s*/\s*p\s*>`)
	blankLinesRegex    = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips the formatting tags a model sometimes puts in prose
// (<br>, <p>, <b>, <i>, <em>, <strong>, <u>). A string is rewritten only when
// every '<' in it opens one of those tags; otherwise, as for "a<b" or
// "Fri &amp; Sat", it is returned exactly as given. Entities are never decoded.
func PlainText(s string) string {
	tags := formattingTagRegex.FindAllStringIndex(s, -1)
	if len(tags) == 0 || len(tags) != strings.Count(s, "<") {
		return s
	}

	text := lineBreakRegex.ReplaceAllString(s, "\n")
	text = paragraphEndRegex.ReplaceAllString(text, "\n\n")
	// Keep '&' literal through the parser.
	text = strings.ReplaceAll(text, "&", "&amp;")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		log.Printf("WARN LLM: could not parse HTML for plain text conversion: %v. Returning input unchanged.", err)
		return s
	}

	plain := doc.Text()
	plain = blankLinesRegex.ReplaceAllString(plain, "\n\n")
	return strings.TrimSpace(plain)
}
