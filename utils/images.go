package utils

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const thumbnailWidth = 200

// CreateThumbnail writes a scaled-down copy of the image at srcPath into
// the thumbnails directory next to it, keeping the aspect ratio. Runs
// synchronously inside the upload request.
func CreateThumbnail(srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", filepath.Base(srcPath), err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 {
		return "", fmt.Errorf("empty image %s", filepath.Base(srcPath))
	}
	height := bounds.Dy() * thumbnailWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	thumbDir := filepath.Join(filepath.Dir(srcPath), "thumbnails")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", err
	}

	thumbPath := filepath.Join(thumbDir, filepath.Base(srcPath))
	out, err := os.Create(thumbPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}
	return thumbPath, nil
}
