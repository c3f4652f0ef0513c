package bgremover

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeRaster decodes any registered image format (PNG, JPEG, GIF, BMP,
// TIFF, WebP) and returns the raster with the format name. Failures are
// reported as *ImageLoadError.
func DecodeRaster(rd io.Reader) (Raster, string, error) {
	img, format, err := image.Decode(rd)
	if err != nil {
		return Raster{}, "", &ImageLoadError{Err: err}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Raster{}, format, &ImageLoadError{Err: ErrInvalidDimensions}
	}
	return RasterFromImage(img), format, nil
}

// DecodeBytes is DecodeRaster over an in-memory buffer, tagging errors with
// name.
func DecodeBytes(name string, data []byte) (Raster, error) {
	r, _, err := DecodeRaster(bytes.NewReader(data))
	var le *ImageLoadError
	if errors.As(err, &le) {
		le.Name = name
	}
	return r, err
}
