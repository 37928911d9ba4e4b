package summarize

import (
	"sort"
	"strings"
)

// Extractor converts one binary document format into plain text. Implementors
// register themselves for a set of extensions.
type Extractor interface {
	Name() string
	Extensions() []string
	Extract(path string) (string, error)
}

// Registry maps lower-cased file extensions to extractors.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: map[string]Extractor{}}
}

// DefaultRegistry registers the built-in extractors: plain text, PDF, DOCX,
// and PPTX.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(PlainTextExtractor{})
	r.Register(PDFExtractor{})
	r.Register(DocxExtractor{})
	r.Register(PptxExtractor{})
	return r
}

// Register adds an extractor for each of its extensions, replacing any
// previous registration.
func (r *Registry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Lookup finds the extractor for ext (with or without leading dot).
func (r *Registry) Lookup(ext string) (Extractor, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	e, ok := r.byExt[ext]
	return e, ok
}

// Supported lists the registered extensions, sorted.
func (r *Registry) Supported() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
