package tileswap

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// BuiltinPrefix marks image resources that are generated instead of read.
const BuiltinPrefix = "builtin:"

// ImageLoader resolves an image resource identifier to a decoded image.
// Load runs off the game goroutine and must not touch game state.
type ImageLoader interface {
	Load(ctx context.Context, resource string) (image.Image, error)
}

// ImageLoaderFunc adapts a plain function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, resource string) (image.Image, error)

// Load calls f(ctx, resource).
func (f ImageLoaderFunc) Load(ctx context.Context, resource string) (image.Image, error) {
	return f(ctx, resource)
}

// FSLoader decodes images from a file system. PNG, JPEG, GIF, BMP and WebP
// are supported. Resources starting with BuiltinPrefix are generated by
// Procedural and never touch FS, so FS may be nil for builtin-only catalogs.
type FSLoader struct {
	FS fs.FS
}

// Load implements ImageLoader.
func (l FSLoader) Load(ctx context.Context, resource string) (image.Image, error) {
	if name, ok := strings.CutPrefix(resource, BuiltinPrefix); ok {
		return Procedural(name, 0, 0)
	}
	if l.FS == nil {
		return nil, fmt.Errorf("tileswap: no asset file system for %q", resource)
	}
	f, err := l.FS.Open(resource)
	if err != nil {
		return nil, fmt.Errorf("tileswap: open image %q: %w", resource, err)
	}
	defer f.Close()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tileswap: decode image %q: %w", resource, err)
	}
	return img, nil
}

// Procedural generates one of the builtin images. A zero width or height
// selects the pattern's natural size.
func Procedural(name string, w, h int) (image.Image, error) {
	switch name {
	case "sunrise":
		if w == 0 || h == 0 {
			w, h = 480, 360
		}
		return sunrise(w, h), nil
	case "mosaic":
		if w == 0 || h == 0 {
			w, h = 360, 480
		}
		return mosaic(w, h), nil
	case "rings":
		if w == 0 || h == 0 {
			w, h = 400, 400
		}
		return rings(w, h), nil
	default:
		return nil, fmt.Errorf("tileswap: unknown builtin image %q", name)
	}
}

// sunrise is a vertical sky gradient with a sun disc and banded hills, so
// every tile of a 3x3 cut looks different.
func sunrise(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)*0.62, float64(h)*0.58
	r := float64(min(w, h)) * 0.18
	for y := range h {
		t := float64(y) / float64(h)
		sky := color.NRGBA{
			R: uint8(40 + 200*t),
			G: uint8(60 + 110*t),
			B: uint8(140 - 60*t),
			A: 255,
		}
		for x := range w {
			c := sky
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy < r*r {
				c = color.NRGBA{R: 255, G: 214, B: 90, A: 255}
			}
			hill := float64(h)*0.72 + math.Sin(float64(x)/float64(w)*math.Pi*3)*float64(h)*0.06
			if float64(y) > hill {
				band := uint8((int(float64(y)-hill) / 12 % 2) * 18)
				c = color.NRGBA{R: 30 + band, G: 90 + band, B: 50, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// mosaic is a grid of hue-shifted cells with a diagonal stripe, portrait
// oriented so the narrow-board layout path is exercised.
func mosaic(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	const cells = 8
	cw, ch := max(w/cells, 1), max(h/cells, 1)
	for y := range h {
		for x := range w {
			i, j := x/cw, y/ch
			hue := float64((i*3+j*5)%12) / 12
			c := hsv(hue, 0.55, 0.9)
			if (x+y)%40 < 6 {
				c = color.NRGBA{R: 250, G: 250, B: 245, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// rings is a set of concentric colored rings.
func rings(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	for y := range h {
		for x := range w {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			img.SetNRGBA(x, y, hsv(math.Mod(d/120, 1), 0.6, 0.95))
		}
	}
	return img
}

// hsv converts hue/saturation/value in [0, 1] to an opaque color.
func hsv(h, s, v float64) color.NRGBA {
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.NRGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// imageFuture is a single-shot result of an asynchronous image load.
type imageFuture struct {
	done chan struct{}
	img  image.Image
	err  error
}

// loadImageAsync starts loading resource on a new goroutine.
func loadImageAsync(ctx context.Context, loader ImageLoader, resource string) *imageFuture {
	f := &imageFuture{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		img, err := loader.Load(ctx, resource)
		if err == nil && img == nil {
			err = fmt.Errorf("tileswap: loader returned no image for %q", resource)
		}
		if err == nil {
			b := img.Bounds()
			if b.Dx() <= 0 || b.Dy() <= 0 {
				err = fmt.Errorf("tileswap: image %q is empty", resource)
			}
		}
		f.img, f.err = img, err
	}()
	return f
}

// Ready reports whether the load has finished, without blocking.
func (f *imageFuture) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the load finishes or ctx is done.
func (f *imageFuture) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
