package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/texture"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrUnsupportedImageFormat is returned when an output extension has no encoder
var ErrUnsupportedImageFormat = errors.New("loaders: unsupported image format")

// jpegQuality is the quality used when saving JPEG output
const jpegQuality = 95

// LoadTexture decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image into a linear-space texture
func LoadTexture(filename string) (*texture.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", filename, err)
	}

	return texture.FromImage(img), nil
}

// SaveImage encodes a texture to filename. The format follows the extension:
// .png, .jpg/.jpeg, .bmp or .tif/.tiff.
func SaveImage(filename string, tex *texture.Texture) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	img := tex.Image()
	switch ext {
	case ".png":
		err = png.Encode(file, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		err = bmp.Encode(file, img)
	default:
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", ext, err)
	}
	return file.Close()
}
