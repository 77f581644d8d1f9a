package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

var (
	wordPattern      = regexp.MustCompile(`\S+`)
	codeBlockPattern = regexp.MustCompile("```[\\s\\S]*?```")
)

// TextStats summarizes the size of a note body
type TextStats struct {
	Words  int `json:"words" yaml:"words"`
	Lines  int `json:"lines" yaml:"lines"`
	Chars  int `json:"chars" yaml:"chars"`
	Tokens int `json:"tokens" yaml:"tokens"` // rough LLM token estimate
}

// Measure computes stats for text. Blank text measures as zero.
func Measure(text string) TextStats {
	text = strings.TrimSpace(text)
	if text == "" {
		return TextStats{}
	}

	words := len(wordPattern.FindAllString(text, -1))
	return TextStats{
		Words:  words,
		Lines:  strings.Count(text, "\n") + 1,
		Chars:  utf8.RuneCountInString(text),
		Tokens: estimateTokens(text, words),
	}
}

// estimateTokens averages a character based guess (about four bytes per
// token) with a word based one (about 1.3 tokens per word). Fenced code is
// denser, roughly three bytes per token.
func estimateTokens(text string, words int) int {
	estimate := (len(text)/4 + int(float64(words)*1.3)) / 2

	for _, block := range codeBlockPattern.FindAllString(text, -1) {
		estimate += len(block)/3 - len(block)/4
	}

	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

// String renders the stats for a status line, e.g. "1,204 words, 38 lines"
func (s TextStats) String() string {
	if s.Words == 0 {
		return "empty"
	}
	return fmt.Sprintf("%s %s, %s %s",
		humanize.Comma(int64(s.Words)), plural(s.Words, "word"),
		humanize.Comma(int64(s.Lines)), plural(s.Lines, "line"))
}

// FormatTokenCount formats a token estimate for display
func FormatTokenCount(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("~%d tokens", tokens)
	case tokens < 10000:
		return fmt.Sprintf("~%.1fK tokens", float64(tokens)/1000)
	default:
		return fmt.Sprintf("~%.0fK tokens", float64(tokens)/1000)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
