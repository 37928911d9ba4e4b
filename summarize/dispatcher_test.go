package summarize

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeModel counts calls so tests can assert the dispatcher never reaches
// the network for unsupported formats.
type fakeModel struct {
	calls    int
	response string
	err      error
}

func (m *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSummarizePlainText(t *testing.T) {
	model := &fakeModel{response: "a short summary"}
	d := NewDispatcher(model, nil)

	path := writeDoc(t, "notes.txt", "the quick brown fox jumps over the lazy dog")
	summary, err := d.Summarize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "a short summary", summary)
	require.Equal(t, 1, model.calls)
}

func TestUnsupportedFormatSkipsNetwork(t *testing.T) {
	model := &fakeModel{response: "should never be produced"}
	d := NewDispatcher(model, nil)

	path := writeDoc(t, "image.png", "not really an image")
	_, err := d.Summarize(context.Background(), path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Zero(t, model.calls)
}

func TestMissingFileIsFilesystemError(t *testing.T) {
	model := &fakeModel{}
	d := NewDispatcher(model, nil)

	_, err := d.Summarize(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	var svcErr *ServiceError
	require.False(t, errors.As(err, &svcErr))
	var extErr *ExtractionError
	require.False(t, errors.As(err, &extErr))
	require.Zero(t, model.calls)
}

func TestServiceFailureSurfacesUntouched(t *testing.T) {
	backendErr := errors.New("connection refused")
	model := &fakeModel{err: backendErr}
	d := NewDispatcher(model, nil)

	path := writeDoc(t, "notes.md", "some markdown content")
	_, err := d.Summarize(context.Background(), path)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.ErrorIs(t, err, backendErr)
}

func TestExtractionFailure(t *testing.T) {
	model := &fakeModel{}
	d := NewDispatcher(model, nil)

	// A .docx that is not a zip archive fails extraction, not dispatch.
	path := writeDoc(t, "broken.docx", "this is not a zip file")
	_, err := d.Summarize(context.Background(), path)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	require.Equal(t, path, extErr.Path)
	require.Zero(t, model.calls)
}

func TestSummaryCacheByContent(t *testing.T) {
	model := &fakeModel{response: "cached summary"}
	d := NewDispatcher(model, nil)

	path := writeDoc(t, "notes.txt", "stable content")
	for i := 0; i < 3; i++ {
		summary, err := d.Summarize(context.Background(), path)
		require.NoError(t, err)
		require.Equal(t, "cached summary", summary)
	}
	require.Equal(t, 1, model.calls)

	// Editing the file invalidates the cache.
	require.NoError(t, os.WriteFile(path, []byte("different content"), 0o644))
	_, err := d.Summarize(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, model.calls)
}
