package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessRoundTripsPNG(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	result, err := p.Process(bytes.NewReader(encodePNG(t, 10, 10)))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if result.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", result.ContentType)
	}
	if result.Width != 10 || result.Height != 10 {
		t.Fatalf("expected 10x10, got %dx%d", result.Width, result.Height)
	}
	if len(result.Data) == 0 {
		t.Fatal("expected encoded data")
	}
}

func TestProcessDownscalesOversizedImage(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 100, MaxHeight: 100, Quality: 85})

	result, err := p.Process(bytes.NewReader(encodePNG(t, 400, 100)))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if result.Width != 100 {
		t.Fatalf("expected width 100 after fit, got %d", result.Width)
	}
	if result.Height != 25 {
		t.Fatalf("expected aspect kept (height 25), got %d", result.Height)
	}
}

func TestProcessReencodesOtherFormatsAsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}

	p := NewProcessor(DefaultConfig())
	result, err := p.Process(&buf)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if result.ContentType != "image/jpeg" {
		t.Fatalf("expected re-encode as image/jpeg, got %s", result.ContentType)
	}
	if len(result.Data) < 2 || result.Data[0] != 0xFF || result.Data[1] != 0xD8 {
		t.Fatal("expected JPEG magic bytes in output")
	}
}

func TestProcessRejectsUndecodableData(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	if _, err := p.Process(bytes.NewReader([]byte("definitely not an image"))); err == nil {
		t.Fatal("expected decode error")
	}
}
