// backend/llm/fenced_block.go
package llm

import (
	"errors"
	"strings"
)

const fence = "```"

// ErrNoFencedBlock is returned when the text has no complete fenced block with the wanted label.
var ErrNoFencedBlock = errors.New("no fenced block found")

// ExtractFencedBlock returns the trimmed content of the first block opened by
// "```"+label and closed by the next "```". The label is matched literally
// right after the opening fence, and the content may span lines.
// Nothing after the label is skipped, so for "```jsonc" the "c" lands in the content.
func ExtractFencedBlock(text, label string) (string, error) {
	open := fence + label
	start := strings.Index(text, open)
	if start < 0 {
		return "", ErrNoFencedBlock
	}
	body := text[start+len(open):]
	end := strings.Index(body, fence)
	if end < 0 {
		return "", ErrNoFencedBlock
	}
	return strings.TrimSpace(body[:end]), nil
}
