package ioutils

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"golang.org/x/image/draw"
)

// ErrBadSize is returned for non-positive thumbnail dimensions.
var ErrBadSize = errors.New("thumbnail size must be positive")

// Thumbnail is a downscaled image laid out for half-block terminal cells:
// every cell shows two vertically stacked pixels.
type Thumbnail struct {
	Cols int
	Rows int

	// Pixels has Rows*2 rows of Cols pixels each.
	Pixels [][]color.RGBA
}

// Cell returns the upper and lower pixel of cell (col, row).
func (t *Thumbnail) Cell(col, row int) (top, bottom color.RGBA) {
	return t.Pixels[row*2][col], t.Pixels[row*2+1][col]
}

// ImageService provides image processing for slide backgrounds.
//
// ImageService is used to:
//   - Decode PNG, JPEG and GIF backgrounds
//   - Scale them down to a terminal-sized thumbnail
//
// Example usage:
//
//	svc := NewImageService()
//	thumb, err := svc.Thumbnail(ctx, data, 24, 8)
//	top, bottom := thumb.Cell(0, 0)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Thumbnail scales data to cols x rows terminal cells.
//
// The image is stretched to fill the cell grid; terminal cells are roughly
// twice as tall as wide, and two pixels per cell makes them close to square.
// The Catmull-Rom algorithm is used for scaling.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, cols, rows int) (*Thumbnail, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrBadSize
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	thumb := &Thumbnail{Cols: cols, Rows: rows, Pixels: make([][]color.RGBA, rows*2)}
	for y := range thumb.Pixels {
		line := make([]color.RGBA, cols)
		for x := range line {
			line[x] = dst.RGBAAt(x, y)
		}
		thumb.Pixels[y] = line
	}

	return thumb, nil
}
