// Package summarize routes documents through format-specific text extractors
// and forwards the extracted text to a local language model for a short
// summary. Every call is synchronous and independent: no queueing, no
// batching, no retries.
package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const promptTemplate = `Summarize the following document in at most %d words.
Reply with only the summary, no preamble.

Document name: %s

%s`

// Request is the transient unit of one summarization call.
type Request struct {
	Path     string
	Text     string
	MaxWords int
}

// Dispatcher implements Summarize(path) over a registry of extractors and a
// language model backend.
type Dispatcher struct {
	registry *Registry
	model    LanguageModel
	cache    *gocache.Cache
	logger   *zap.Logger
	maxWords int
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithMaxWords overrides the requested summary length.
func WithMaxWords(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxWords = n
		}
	}
}

// WithRegistry swaps the extractor registry.
func WithRegistry(r *Registry) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithCacheTTL changes how long summaries of unchanged content are reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(d *Dispatcher) {
		d.cache = gocache.New(ttl, 10*time.Minute)
	}
}

// NewDispatcher wires the default extractors in front of model.
func NewDispatcher(model LanguageModel, logger *zap.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		registry: DefaultRegistry(),
		model:    model,
		cache:    gocache.New(1*time.Hour, 10*time.Minute),
		logger:   logger,
		maxWords: 150,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Supported lists the extensions the dispatcher can handle.
func (d *Dispatcher) Supported() []string {
	return d.registry.Supported()
}

// Summarize extracts text from the document at path and returns a model
// generated summary. Filesystem errors surface untouched; an unsupported
// extension fails before any extraction or network activity.
func (d *Dispatcher) Summarize(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := d.registry.Lookup(ext)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	start := time.Now()
	text, err := extractor.Extract(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	d.logger.Debug("extracted document",
		zap.String("path", path),
		zap.String("extractor", extractor.Name()),
		zap.Int("chars", len(text)),
		zap.Duration("took", time.Since(start)))

	key := cacheKey(text, d.maxWords)
	if cached, ok := d.cache.Get(key); ok {
		d.logger.Debug("summary cache hit", zap.String("path", path))
		return cached.(string), nil
	}

	req := Request{Path: path, Text: text, MaxWords: d.maxWords}
	prompt := fmt.Sprintf(promptTemplate, req.MaxWords, filepath.Base(req.Path), req.Text)
	summary, err := d.model.Generate(ctx, prompt)
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	summary = strings.TrimSpace(summary)

	d.cache.Set(key, summary, gocache.DefaultExpiration)
	d.logger.Info("document summarized",
		zap.String("path", path),
		zap.Int("summary_chars", len(summary)),
		zap.Duration("took", time.Since(start)))
	return summary, nil
}

// cacheKey ties a summary to the extracted content, not the path, so edits
// invalidate naturally and duplicates share one entry.
func cacheKey(text string, maxWords int) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%d", hex.EncodeToString(sum[:]), maxWords)
}
