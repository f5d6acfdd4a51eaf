package storage

import (
	"bytes"
	"errors"
	"testing"
)

// Minimal valid PNG header followed by padding; enough for content sniffing
func pngBytes(size int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	data := make([]byte, size)
	copy(data, header)
	return data
}

func TestValidateFileAcceptsPNG(t *testing.T) {
	data, mime, err := ValidateFile(bytes.NewReader(pngBytes(512)), FolderTransactions, 1024)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("expected image/png, got %s", mime)
	}
	if len(data) != 512 {
		t.Fatalf("expected 512 bytes back, got %d", len(data))
	}
}

func TestValidateFileRejectsEmpty(t *testing.T) {
	_, _, err := ValidateFile(bytes.NewReader(nil), FolderTransactions, 1024)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestValidateFileRejectsOversized(t *testing.T) {
	_, _, err := ValidateFile(bytes.NewReader(pngBytes(2048)), FolderTransactions, 1024)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateFileRejectsNonImageContent(t *testing.T) {
	_, _, err := ValidateFile(bytes.NewReader([]byte("#!/bin/sh\necho pwned\n")), FolderTransactions, 1024)
	if !errors.Is(err, ErrInvalidMimeType) {
		t.Fatalf("expected ErrInvalidMimeType, got %v", err)
	}
}

func TestValidateFileSniffsContentNotExtension(t *testing.T) {
	// JPEG magic bytes; the caller has no filename to lie with
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 128)...)
	_, mime, err := ValidateFile(bytes.NewReader(jpeg), FolderUsers, 1024)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if mime != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %s", mime)
	}
}

func TestGetExtensionForMime(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"text/plain": "",
	}
	for mime, want := range cases {
		if got := GetExtensionForMime(mime); got != want {
			t.Fatalf("expected %q for %s, got %q", want, mime, got)
		}
	}
}
