package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emrgen/inquests-migration/internal/canon"
	"github.com/emrgen/inquests-migration/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	key := storage.Key([]*string{canon.Ptr("Documents"), canon.Ptr("CAD_ONCA"), nil, canon.Ptr(" R. v. Smith (2020) "), canon.Ptr("Reasons/Decision")}, "pdf")
	assert.Equal(t, "Documents/CAD-ONCA/MissingData/R-v-Smith-2020/Reasons-Decision.pdf", key)

	key = storage.DocumentKey(canon.Ptr("CAD_ONCA"), canon.Ptr("2020"), canon.Ptr("Smith"), canon.Ptr("Verdict"))
	assert.Equal(t, "Documents/CAD-ONCA/2020/Smith/Verdict.pdf", key)

	key = storage.DocumentKey(canon.Ptr("CAD_ONCA"), canon.Ptr("2020"), canon.Ptr(""), canon.Ptr("Verdict"))
	assert.Equal(t, "Documents/CAD-ONCA/2020/MissingData/Verdict.pdf", key)
}

func TestDocumentFile(t *testing.T) {
	dir := t.TempDir()

	_, err := storage.DocumentFile(dir, "D1")
	assert.ErrorIs(t, err, storage.ErrNoDocumentFile)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "D1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "D1", "a.pdf"), []byte("%PDF"), 0644))
	path, err := storage.DocumentFile(dir, " D1 ")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", filepath.Base(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "D1", "b.pdf"), []byte("%PDF"), 0644))
	_, err = storage.DocumentFile(dir, "D1")
	assert.ErrorIs(t, err, storage.ErrManyDocumentFiles)
}

func TestFilesystemStore(t *testing.T) {
	ctx := context.Background()
	src := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0644))

	store, err := storage.NewFilesystemStore(filepath.Join(t.TempDir(), "bucket"))
	require.NoError(t, err)

	key := "Documents/CAD-ONCA/2020/Smith/Verdict.pdf"
	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Upload(ctx, src, key))

	ok, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	url := store.URLFor(key)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, key))
}
