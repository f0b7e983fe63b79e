// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package unpack extracts downloaded ZIP archives into the download directory.
package unpack

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotZip is returned when the file does not start with a ZIP signature.
	ErrNotZip = errors.New("not a zip archive")
	// ErrUnsafePath is returned for entries that would land outside destDir.
	ErrUnsafePath = errors.New("archive entry escapes destination")
)

// ZIP local header, empty archive, and spanned archive signatures.
var zipSignatures = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
	{0x50, 0x4B, 0x05, 0x06},
	{0x50, 0x4B, 0x07, 0x08},
}

// HasZipSignature reports whether the file at path starts with a ZIP magic number.
func HasZipSignature(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	for _, sig := range zipSignatures {
		if bytes.Equal(header, sig) {
			return true, nil
		}
	}
	return false, nil
}

// Zip extracts every entry of archivePath into destDir and returns the paths
// of the extracted files. All entry names are checked before anything is
// written: absolute names, names climbing out of destDir, and symlinks fail
// with ErrUnsafePath and leave destDir untouched.
func Zip(ctx context.Context, archivePath, destDir string) ([]string, error) {
	ok, err := HasZipSignature(archivePath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", archivePath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(archivePath), ErrNotZip)
	}

	r, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		r.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, filepath.Base(archivePath))
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", archivePath, err)
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", destDir, err)
	}

	targets := make([]string, len(r.File))
	for i, f := range r.File {
		target, err := entryPath(root, f)
		if err != nil {
			return nil, err
		}
		targets[i] = target
	}

	var extracted []string
	for i, f := range r.File {
		if err := ctx.Err(); err != nil {
			return extracted, err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targets[i], 0o755); err != nil {
				return extracted, fmt.Errorf("creating directory %s: %w", targets[i], err)
			}
			continue
		}
		if err := writeEntry(f, targets[i]); err != nil {
			return extracted, err
		}
		extracted = append(extracted, targets[i])
	}
	return extracted, nil
}

func entryPath(root string, f *zip.File) (string, error) {
	if f.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("%w: %s is a symlink", ErrUnsafePath, f.Name)
	}
	name := filepath.FromSlash(f.Name)
	if filepath.IsAbs(name) || strings.HasPrefix(f.Name, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
	}
	target := filepath.Join(root, name)
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
	}
	return target, nil
}

func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", target, closeErr)
	}
	return nil
}
