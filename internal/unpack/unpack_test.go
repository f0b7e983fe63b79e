// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package unpack

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a ZIP archive at path holding the given name → content entries.
// Names ending in "/" become directory entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "22179-f10.zip")
	writeZip(t, archive, map[string]string{
		"22179-f10.doc":     "word document",
		"figures/":          "",
		"figures/fig1.emf":  "figure",
	})

	got, err := Zip(context.Background(), archive, dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "22179-f10.doc"),
		filepath.Join(dir, "figures", "fig1.emf"),
	}, got)

	data, err := os.ReadFile(filepath.Join(dir, "22179-f10.doc"))
	require.NoError(t, err)
	assert.Equal(t, "word document", string(data))
}

func TestZipOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.doc"), []byte("old"), 0o644))
	archive := filepath.Join(dir, "a.zip")
	writeZip(t, archive, map[string]string{"a.doc": "new"})

	_, err := Zip(context.Background(), archive, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.doc"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestZipRejectsTraversal(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent directory", "../evil.doc"},
		{"nested parent", "docs/../../evil.doc"},
		{"absolute", "/tmp/evil.doc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dest := filepath.Join(root, "download")
			require.NoError(t, os.MkdirAll(dest, 0o755))
			archive := filepath.Join(dest, "bad.zip")
			writeZip(t, archive, map[string]string{
				"good.doc": "fine",
				tt.entry:   "payload",
			})

			_, err := Zip(context.Background(), archive, dest)
			require.ErrorIs(t, err, ErrUnsafePath)

			_, statErr := os.Stat(filepath.Join(root, "evil.doc"))
			assert.True(t, os.IsNotExist(statErr))
			_, statErr = os.Stat(filepath.Join(dest, "good.doc"))
			assert.True(t, os.IsNotExist(statErr), "nothing is extracted when any entry is unsafe")
		})
	}
}

func TestZipNotAnArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.zip")
	require.NoError(t, os.WriteFile(path, []byte("<html>not found</html>"), 0o644))

	_, err := Zip(context.Background(), path, dir)
	assert.ErrorIs(t, err, ErrNotZip)
}

func TestZipCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x01}, 0o644))

	_, err := Zip(context.Background(), path, dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotZip)
}

func TestHasZipSignature(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"local header", []byte{0x50, 0x4B, 0x03, 0x04, 0xFF}, true},
		{"empty archive", []byte{0x50, 0x4B, 0x05, 0x06}, true},
		{"pdf", []byte("%PDF-1.4"), false},
		{"short", []byte{0x50}, false},
		{"empty file", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, tt.content, 0o644))
			got, err := HasZipSignature(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
