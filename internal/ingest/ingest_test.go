package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o600))
}

func cardTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range []string{
		"a.txt",
		"b.JPG",
		"notes.md",
		"nested/c.heic",
		"nested/d.pdf",
		".hidden/e.png",
		".f.png",
	} {
		touch(t, filepath.Join(root, p))
	}
	return root
}

func TestAllowedExtAndHidden(t *testing.T) {
	assert.True(t, AllowedExt(".TIFF"))
	assert.True(t, AllowedExt("txt"))
	assert.False(t, AllowedExt(".pdf"))
	assert.False(t, AllowedExt(""))

	assert.True(t, IsHidden("/x/.git"))
	assert.False(t, IsHidden("/x/cards"))
	assert.False(t, IsHidden("."))
}

func TestWalkDirectory(t *testing.T) {
	root := cardTree(t)

	got, stats, err := WalkDirectory(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.JPG"),
		filepath.Join(root, "nested", "c.heic"),
	}, got)
	assert.Equal(t, uint32(5), stats.Scanned)
	assert.Equal(t, uint32(3), stats.Matched)

	all, _, err := WalkDirectory(root, false)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestWalkDirectoryErrors(t *testing.T) {
	_, _, err := WalkDirectory("  ", false)
	assert.Error(t, err)
	_, _, err = WalkDirectory(filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}

type fakeProcessor struct{}

func (fakeProcessor) Process(_ context.Context, path string, _ bool) (*entity.Scan, error) {
	if filepath.Ext(path) == ".heic" {
		return nil, common.ErrExtraction
	}
	s := &entity.Scan{ID: uuid.New(), SourcePath: path, ContentHash: []byte{0xab}, Status: string(constants.ScanStatusParsed)}
	if filepath.Ext(path) == ".JPG" {
		s.NeedsReview = true
		s.Status = string(constants.ScanStatusNeedsReview)
	}
	return s, nil
}

func TestUsecaseIngestDirectory(t *testing.T) {
	root := cardTree(t)
	u := NewUsecase(fakeProcessor{}, nil)

	results, stats, err := u.IngestDirectory(context.Background(), root, true)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, uint32(2), stats.Succeeded)
	assert.Equal(t, uint32(1), stats.NeedsReview)
	assert.Equal(t, uint32(1), stats.Failed)

	assert.Equal(t, "ab", results[0].HashHex)
	assert.Equal(t, string(constants.ScanStatusParsed), results[0].Status)
	assert.True(t, results[1].NeedsReview)
	assert.NotEmpty(t, results[2].Err)
}

func TestUsecaseIngestPathRejectsExtension(t *testing.T) {
	u := NewUsecase(fakeProcessor{}, nil)
	res, err := u.IngestPath(context.Background(), "card.pdf", false)
	require.Error(t, err)
	assert.NotEmpty(t, res.Err)
}

func collect(t *testing.T, ch <-chan string, n int) []string {
	t.Helper()
	var out []string
	deadline := time.After(5 * time.Second)
	for len(out) < n {
		select {
		case p, ok := <-ch:
			require.True(t, ok, "watcher closed early")
			out = append(out, p)
		case <-deadline:
			t.Fatalf("timed out after %d of %d events: %v", len(out), n, out)
		}
	}
	return out
}

func TestWatcherInitialScanAndNewFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "existing.png"))
	touch(t, filepath.Join(root, "skip.pdf"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{root},
		InitialScan: true,
		SkipHidden:  true,
		Debounce:    50 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "existing.png")}, collect(t, events, 1))

	touch(t, filepath.Join(root, "new.txt"))
	touch(t, filepath.Join(root, "ignored.doc"))
	assert.Equal(t, []string{filepath.Join(root, "new.txt")}, collect(t, events, 1))

	cancel()
	for range events {
	}
}

func TestWatcherNoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}
