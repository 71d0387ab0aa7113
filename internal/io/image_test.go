package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestThumbnail_Size(t *testing.T) {
	svc := NewImageService()
	red := color.RGBA{R: 255, A: 255}

	thumb, err := svc.Thumbnail(context.Background(), solidPNG(t, 64, 40, red), 10, 4)
	if err != nil {
		t.Fatalf("Thumbnail() error: %v", err)
	}

	if thumb.Cols != 10 || thumb.Rows != 4 || len(thumb.Pixels) != 8 || len(thumb.Pixels[0]) != 10 {
		t.Fatalf("unexpected geometry: %dx%d, %d pixel rows", thumb.Cols, thumb.Rows, len(thumb.Pixels))
	}

	top, bottom := thumb.Cell(5, 2)
	if top.R < 250 || top.G > 5 || bottom.R < 250 {
		t.Errorf("Cell(5,2) = %v/%v, want red", top, bottom)
	}
}

func TestThumbnail_Errors(t *testing.T) {
	svc := NewImageService()

	if _, err := svc.Thumbnail(context.Background(), []byte("not an image"), 4, 4); err == nil {
		t.Error("expected decode error")
	}
	if _, err := svc.Thumbnail(context.Background(), nil, 0, 4); err != ErrBadSize {
		t.Errorf("expected ErrBadSize, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Thumbnail(ctx, solidPNG(t, 2, 2, color.RGBA{A: 255}), 1, 1); err == nil {
		t.Error("expected context error")
	}
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"/etc/sjt", "img/a.png", "/etc/sjt/img/a.png"},
		{"/etc/sjt", "/abs/a.png", "/abs/a.png"},
		{"/etc/sjt", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"/etc/sjt", "", ""},
		{"", "img/a.png", "img/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := ResolveRef(tt.base, tt.ref); got != tt.want {
				t.Errorf("ResolveRef(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
			}
		})
	}
}
