package pipeline

import (
	"regexp"
	"strings"
)

var blockSeparator = regexp.MustCompile(`\n{2,}`)

// SplitBlocks segments plain text into paragraph blocks. A run of two
// or more newlines separates blocks; empty and whitespace-only
// segments are dropped. Order is preserved. Text without a blank-line
// separator yields exactly one block.
func SplitBlocks(text string) []string {
	var blocks []string
	for _, segment := range blockSeparator.Split(text, -1) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		blocks = append(blocks, segment)
	}
	return blocks
}
