package summarize

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeArchive produces a minimal OOXML-shaped zip for extractor tests.
func writeArchive(t *testing.T, name string, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for partName, content := range parts {
		part, err := w.Create(partName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestDocxExtract(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> world</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`
	path := writeArchive(t, "doc.docx", map[string]string{"word/document.xml": doc})

	text, err := DocxExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "Hello world\nSecond paragraph", text)
}

func TestDocxMissingPart(t *testing.T) {
	path := writeArchive(t, "doc.docx", map[string]string{"other.xml": "<x/>"})
	_, err := DocxExtractor{}.Extract(path)
	require.Error(t, err)
}

func TestPptxExtractOrdersSlides(t *testing.T) {
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	}
	path := writeArchive(t, "deck.pptx", map[string]string{
		"ppt/slides/slide10.xml": slide("Tenth"),
		"ppt/slides/slide2.xml":  slide("Second"),
		"ppt/slides/slide1.xml":  slide("First"),
	})

	text, err := PptxExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "First\n\nSecond\n\nTenth", text)
}

func TestPptxNoSlides(t *testing.T) {
	path := writeArchive(t, "deck.pptx", map[string]string{"ppt/presentation.xml": "<x/>"})
	_, err := PptxExtractor{}.Extract(path)
	require.Error(t, err)
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()
	for _, ext := range []string{".pdf", ".docx", ".pptx", ".txt", ".md", "PDF"} {
		_, ok := r.Lookup(ext)
		require.True(t, ok, "expected extractor for %s", ext)
	}
	_, ok := r.Lookup(".exe")
	require.False(t, ok)
}
