package summarize

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

// maxExtractBytes caps how much of a document is read for summarization.
const maxExtractBytes = 512 * 1024

// PlainTextExtractor passes text formats through unchanged.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Name() string { return "plaintext" }

func (PlainTextExtractor) Extensions() []string {
	return []string{".txt", ".md", ".log", ".csv"}
}

func (PlainTextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) > maxExtractBytes {
		data = data[:maxExtractBytes]
		// Drop a rune cut in half by the truncation.
		for len(data) > 0 && !utf8.RuneStart(data[len(data)-1]) {
			data = data[:len(data)-1]
		}
		if r, size := utf8.DecodeLastRune(data); r == utf8.RuneError && size == 1 {
			data = data[:len(data)-1]
		}
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	return strings.TrimSpace(string(data)), nil
}
