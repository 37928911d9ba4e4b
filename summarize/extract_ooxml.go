package summarize

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DOCX and PPTX are zip archives of flat XML parts; the visible text lives in
// <w:t> (WordprocessingML) and <a:t> (DrawingML) elements. Pulling character
// data out of those elements is all a summary needs.

// DocxExtractor reads the main document part of .docx files.
type DocxExtractor struct{}

func (DocxExtractor) Name() string { return "docx" }

func (DocxExtractor) Extensions() []string { return []string{".docx"} }

func (DocxExtractor) Extract(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	part := findPart(archive, "word/document.xml")
	if part == nil {
		return "", errors.New("word/document.xml not found")
	}
	text, err := extractPartText(part)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("document contains no text")
	}
	return text, nil
}

// PptxExtractor reads every slide part of .pptx files in slide order.
type PptxExtractor struct{}

func (PptxExtractor) Name() string { return "pptx" }

func (PptxExtractor) Extensions() []string { return []string{".pptx"} }

func (PptxExtractor) Extract(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	var slides []*zip.File
	for _, f := range archive.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	if len(slides) == 0 {
		return "", errors.New("presentation contains no slides")
	}
	sort.Slice(slides, func(i, j int) bool { return slideLess(slides[i].Name, slides[j].Name) })

	var parts []string
	for i, slide := range slides {
		text, err := extractPartText(slide)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", i+1, err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("presentation contains no text")
	}
	return strings.Join(parts, "\n\n"), nil
}

func findPart(archive *zip.ReadCloser, name string) *zip.File {
	for _, f := range archive.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// extractPartText streams one XML part, collecting character data from text
// runs and inserting newlines at paragraph and break boundaries.
func extractPartText(part *zip.File) (string, error) {
	rc, err := part.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(io.LimitReader(rc, maxExtractBytes))
	var b strings.Builder
	var inText bool
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A part cut off by the size cap still yields its prefix.
			if b.Len() > 0 {
				break
			}
			return "", err
		}
		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inText = false
			case "p", "br":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(tok)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// slideLess orders slide part names numerically so slide10 follows slide9.
func slideLess(a, b string) bool {
	return slideNumber(a) < slideNumber(b)
}

func slideNumber(name string) int {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	n := 0
	for _, r := range name {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
