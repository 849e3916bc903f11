package placeholders

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ColorPalette holds the backdrop colours placeholder portraits cycle through
var ColorPalette = []color.RGBA{
	{214, 96, 77, 255},   // Brick
	{244, 165, 130, 255}, // Salmon
	{146, 197, 222, 255}, // Sky
	{67, 147, 195, 255},  // Steel
	{178, 171, 210, 255}, // Lavender
	{127, 191, 123, 255}, // Sage
	{253, 219, 119, 255}, // Sand
}

// Silhouette is the head-and-shoulders colour
var Silhouette = color.RGBA{40, 40, 48, 255}

// PaletteColor picks a stable backdrop colour for name
func PaletteColor(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	return ColorPalette[h.Sum32()%uint32(len(ColorPalette))]
}

// CreateSolidTile creates a simple solid-colored square
func CreateSolidTile(col color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreatePortrait draws a generic head-and-shoulders portrait on a backdrop
// chosen from name, for photos that could not be loaded.
func CreatePortrait(name string, size int) *image.RGBA {
	img := CreateSolidTile(PaletteColor(name), size)

	s := float64(size)
	headX, headY, headR := s/2, s*0.38, s*0.18
	bodyX, bodyY, bodyRX, bodyRY := s/2, s*0.95, s*0.36, s*0.3

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if inEllipse(fx, fy, headX, headY, headR, headR) ||
				inEllipse(fx, fy, bodyX, bodyY, bodyRX, bodyRY) {
				img.SetRGBA(x, y, Silhouette)
			}
		}
	}
	return img
}

func inEllipse(x, y, cx, cy, rx, ry float64) bool {
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return dx*dx+dy*dy <= 1
}

// Portrait names a placeholder file to generate
type Portrait struct {
	Name string
	Path string // relative to the output directory
}

// GenerateAndSave writes a size×size portrait for each entry under dir,
// creating dir if needed
func GenerateAndSave(dir string, size int, portraits []Portrait) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}

	for _, p := range portraits {
		path := filepath.Join(dir, p.Path)
		if err := SaveImage(CreatePortrait(p.Name, size), path); err != nil {
			return fmt.Errorf("failed to save %s: %w", p.Path, err)
		}
	}
	return nil
}

// SaveImage encodes img to path as JPEG when the extension asks for it and
// as PNG otherwise
func SaveImage(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	default:
		return png.Encode(file, img)
	}
}
