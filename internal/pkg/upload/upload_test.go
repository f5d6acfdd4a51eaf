package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/spendio/spendio-api/internal/pkg/imaging"
	"github.com/spendio/spendio-api/internal/pkg/storage"
)

type memStore struct {
	objects map[string][]byte
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Put(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}

func (m *memStore) GetURL(key string) string {
	return "http://files.test/" + key
}

func newTestService(store storage.Storage) *Service {
	return NewService(store, imaging.NewProcessor(imaging.DefaultConfig()))
}

func pngPayload(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// Sniffs as image/webp but carries no decodable frame
func brokenWebpPayload() []byte {
	payload := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
	payload = append(payload, []byte("WEBPVP8 ")...)
	return append(payload, make([]byte, 64)...)
}

func TestUploadImageStoresProcessedPNG(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	url, err := svc.UploadImage(context.Background(), storage.FolderTransactions, bytes.NewReader(pngPayload(t)))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://files.test/transactions/") {
		t.Fatalf("unexpected url %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected .png key, got %s", url)
	}
	if len(store.objects) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.objects))
	}
}

func TestUploadImageRejectsUndecodablePayload(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	// passes magic-byte sniffing, fails image decode; the caller must
	// see the typed upload error, not the raw decode failure
	_, err := svc.UploadImage(context.Background(), storage.FolderTransactions, bytes.NewReader(brokenWebpPayload()))
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatal("nothing should have been stored")
	}
}

func TestUploadImageRejectsUnknownFolder(t *testing.T) {
	svc := newTestService(newMemStore())

	if _, err := svc.UploadImage(context.Background(), "attachments", bytes.NewReader(pngPayload(t))); err == nil {
		t.Fatal("expected unknown folder error")
	}
}

func TestDeleteByURLDerivesStoredKey(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	url, err := svc.UploadImage(context.Background(), storage.FolderWallets, bytes.NewReader(pngPayload(t)))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.DeleteByURL(context.Background(), url); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatal("expected object removed")
	}
	if len(store.deleted) != 1 || !strings.HasPrefix(store.deleted[0], "wallets/") {
		t.Fatalf("unexpected deleted keys %v", store.deleted)
	}
}

func TestDeleteByURLIgnoresForeignURLs(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	if err := svc.DeleteByURL(context.Background(), "http://elsewhere.test/not/ours.png"); err != nil {
		t.Fatalf("expected foreign url ignored, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatal("no delete should have been issued")
	}
}
