package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestManager_LoadMixedSources(t *testing.T) {
	data := pngBytes(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "local.png"), data, 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	var mu sync.Mutex
	var warnings int
	m := NewManager(Options{BaseDir: dir, MaxConcurrent: 2, Cols: 4, Rows: 2}, nil, func(e ProgressEvent) {
		if e.Level == LevelWarning {
			mu.Lock()
			warnings++
			mu.Unlock()
		}
	})

	thumbs, err := m.Load(context.Background(), []Request{
		{Index: 0, Ref: "local.png"},
		{Index: 1, Ref: srv.URL + "/remote.png"},
		{Index: 2, Ref: srv.URL + "/missing.png"},
		{Index: 3, Ref: "absent.png"},
		{Index: 4},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(thumbs) != 2 || thumbs[0] == nil || thumbs[1] == nil {
		t.Fatalf("Load() = %v, want slides 0 and 1", thumbs)
	}
	if thumbs[0].Cols != 4 || thumbs[0].Rows != 2 {
		t.Errorf("thumbnail geometry %dx%d", thumbs[0].Cols, thumbs[0].Rows)
	}
	if warnings != 2 {
		t.Errorf("warnings = %d, want 2", warnings)
	}

	loaded, failed := m.GetProgress()
	if loaded != 2 || failed != 2 {
		t.Errorf("GetProgress() = %d, %d", loaded, failed)
	}
}

func TestManager_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager(Options{Cols: 1, Rows: 1}, nil, nil)
	if _, err := m.Load(ctx, []Request{{Index: 0, Ref: "x.png"}}); err == nil {
		t.Error("Load() should report cancellation")
	}
}
