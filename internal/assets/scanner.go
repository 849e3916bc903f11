package assets

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"chosenoffset.com/tiltcards/internal/config"
)

// imageExtensions are the formats the loader can decode
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsImageFile reports whether name has a decodable image extension
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// ScanDirectory lists every image file at the root of fsys as a tile entry,
// sorted by file name. The tile name is the file name without its extension.
func ScanDirectory(fsys fs.FS) ([]config.TileEntry, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	var tiles []config.TileEntry
	for _, entry := range entries {
		// Skip directories and hidden files
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !IsImageFile(name) {
			continue
		}
		tiles = append(tiles, config.TileEntry{
			Name: strings.TrimSuffix(name, path.Ext(name)),
			Path: name,
		})
	}

	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Path < tiles[j].Path })
	return tiles, nil
}
