package tileswap

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"
)

func TestProceduralSizes(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"sunrise", 480, 360},
		{"mosaic", 360, 480},
		{"rings", 400, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Procedural(tt.name, 0, 0)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("natural size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
			img, err = Procedural(tt.name, 32, 24)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
				t.Errorf("explicit size = %dx%d, want 32x24", b.Dx(), b.Dy())
			}
		})
	}
	if _, err := Procedural("nope", 0, 0); err == nil {
		t.Error("unknown builtin accepted")
	}
}

func TestSunriseTilesDiffer(t *testing.T) {
	img, _ := Procedural("sunrise", 90, 90)
	seen := map[color.Color]bool{}
	for y := 15; y < 90; y += 30 {
		for x := 15; x < 90; x += 30 {
			seen[img.At(x, y)] = true
		}
	}
	if len(seen) < 3 {
		t.Errorf("only %d distinct colors across a 3x3 sample", len(seen))
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"img/photo.png": {Data: encodePNG(t, 30, 20)},
		"img/junk.png":  {Data: []byte("not an image")},
	}
	l := FSLoader{FS: fsys}
	ctx := context.Background()

	img, err := l.Load(ctx, "img/photo.png")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("decoded %v", b)
	}

	if _, err := l.Load(ctx, "img/missing.png"); err == nil {
		t.Error("missing file loaded")
	}
	if _, err := l.Load(ctx, "img/junk.png"); err == nil {
		t.Error("garbage decoded")
	}
	if _, err := l.Load(ctx, "builtin:rings"); err != nil {
		t.Errorf("builtin through FSLoader: %v", err)
	}
	if _, err := (FSLoader{}).Load(ctx, "img/photo.png"); err == nil {
		t.Error("nil FS served a file")
	}
}

func TestFSLoaderCancelled(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: encodePNG(t, 2, 2)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FSLoader{FS: fsys}).Load(ctx, "a.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestImageFuture(t *testing.T) {
	release := make(chan struct{})
	loader := ImageLoaderFunc(func(ctx context.Context, resource string) (image.Image, error) {
		<-release
		return image.NewNRGBA(image.Rect(0, 0, 4, 4)), nil
	})
	f := loadImageAsync(context.Background(), loader, "x")
	if f.Ready() {
		t.Fatal("future ready before the loader returned")
	}

	short, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Wait(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait = %v, want deadline", err)
	}

	close(release)
	img, err := f.Wait(context.Background())
	if err != nil || img == nil {
		t.Fatalf("Wait = %v, %v", img, err)
	}
	if !f.Ready() {
		t.Error("future not ready after Wait")
	}
}

func TestImageFutureRejectsNil(t *testing.T) {
	loader := ImageLoaderFunc(func(context.Context, string) (image.Image, error) {
		return nil, nil
	})
	f := loadImageAsync(context.Background(), loader, "x")
	if _, err := f.Wait(context.Background()); err == nil {
		t.Error("nil image accepted")
	}
}
