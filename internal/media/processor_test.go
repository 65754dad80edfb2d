package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessPassesSmallImagesThrough(t *testing.T) {
	data := pngOf(t, 40, 20)
	res, err := NewImagingProcessor(100).Process(context.Background(), Upload{Reader: bytes.NewReader(data), FileName: "a.png"}, 0)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Resized || !bytes.Equal(res.Bytes, data) {
		t.Fatal("expected untouched passthrough")
	}
	if res.ContentType != "image/png" {
		t.Fatalf("unexpected content type %s", res.ContentType)
	}
}

func TestProcessResizesIntoBoundingBox(t *testing.T) {
	data := pngOf(t, 400, 100)
	res, err := NewImagingProcessor(1024).Process(context.Background(), Upload{Reader: bytes.NewReader(data), ContentType: "image/png"}, 200)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !res.Resized || res.Width != 200 || res.Height != 50 {
		t.Fatalf("unexpected result %dx%d resized=%v", res.Width, res.Height, res.Resized)
	}
	if res.ContentType != "image/png" {
		t.Fatalf("expected png output, got %s", res.ContentType)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := NewImagingProcessor(0).Process(context.Background(), Upload{Reader: strings.NewReader("plain text")}, 0)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestExtension(t *testing.T) {
	if Extension("image/png") != ".png" || Extension("image/jpeg") != ".jpg" || Extension("") != ".jpg" {
		t.Fatal("unexpected extension mapping")
	}
}
