// Package assets loads the gallery photos, crops them to square tiles and
// substitutes generated portraits for anything that cannot be read.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/gallery"
	"chosenoffset.com/tiltcards/internal/placeholders"
)

// ErrNoAssetDir is returned for every read from a loader with no file system
var ErrNoAssetDir = errors.New("no asset directory")

// Photo is a decoded, square, tile-sized image
type Photo struct {
	Name        string
	Image       *image.RGBA
	Swatch      color.RGBA // average colour
	Placeholder bool       // generated because the file could not be loaded
}

// Loader reads photos from a file system
type Loader struct {
	fsys   fs.FS
	size   int
	logger *zap.Logger
}

// NewLoader creates a loader producing size×size photos. A nil fsys yields
// placeholders for every entry.
func NewLoader(fsys fs.FS, size int, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, size: size, logger: logger}
}

// Load loads every entry in order. An empty list loads every image found at
// the root of the file system. Unreadable photos are replaced by placeholders
// and logged; Load never drops an entry.
func (l *Loader) Load(entries []config.TileEntry) []Photo {
	if len(entries) == 0 && l.fsys != nil {
		scanned, err := ScanDirectory(l.fsys)
		if err != nil {
			l.logger.Warn("asset scan failed", zap.Error(err))
		}
		entries = scanned
	}

	photos := make([]Photo, 0, len(entries))
	for _, e := range entries {
		photos = append(photos, l.LoadOne(e))
	}
	l.logger.Info("photos loaded", zap.Int("count", len(photos)))
	return photos
}

// LoadOne loads a single photo, falling back to a placeholder portrait
func (l *Loader) LoadOne(e config.TileEntry) Photo {
	img, err := l.read(e.Path)
	if err != nil {
		l.logger.Warn("using placeholder",
			zap.String("tile", e.Name),
			zap.String("path", e.Path),
			zap.Error(err))
		portrait := placeholders.CreatePortrait(e.Name, l.size)
		return Photo{
			Name:        e.Name,
			Image:       portrait,
			Swatch:      AverageColor(portrait),
			Placeholder: true,
		}
	}

	covered := Cover(img, l.size)
	l.logger.Debug("photo decoded",
		zap.String("tile", e.Name),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return Photo{
		Name:   e.Name,
		Image:  covered,
		Swatch: AverageColor(covered),
	}
}

func (l *Loader) read(name string) (image.Image, error) {
	if l.fsys == nil {
		return nil, ErrNoAssetDir
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := Decode(f)
	return img, err
}

// Decode decodes a png, jpeg, gif or webp image
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Cover scales src to fill a size×size square, cropping the overflow
// symmetrically.
func Cover(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	if b.Empty() || size <= 0 {
		return dst
	}

	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

// AverageColor returns the mean colour of img
func AverageColor(img image.Image) color.RGBA {
	b := img.Bounds()
	n := uint64(b.Dx() * b.Dy())
	if n == 0 {
		return color.RGBA{}
	}

	var r, g, bl, a uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			r += uint64(c.R)
			g += uint64(c.G)
			bl += uint64(c.B)
			a += uint64(c.A)
		}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), uint8(a / n)}
}

// Entries converts photos to gallery entries, preserving order
func Entries(photos []Photo) []gallery.Entry {
	out := make([]gallery.Entry, len(photos))
	for i, p := range photos {
		out[i] = gallery.Entry{Name: p.Name, Swatch: p.Swatch}
	}
	return out
}
