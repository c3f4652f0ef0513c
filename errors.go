package bgremover

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned for rasters with zero width or height.
	ErrInvalidDimensions = errors.New("bgremover: invalid dimensions")
	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("bgremover: invalid options")
	// ErrSizeMismatch is returned when a mask or edge map does not match the
	// raster it is applied to.
	ErrSizeMismatch = errors.New("bgremover: size mismatch")
)

// ImageLoadError reports input that could not be decoded into a raster.
type ImageLoadError struct {
	Name string
	Err  error
}

func (e *ImageLoadError) Error() string {
	if e.Name == "" {
		return "image load: " + e.Err.Error()
	}
	return fmt.Sprintf("image load %q: %v", e.Name, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// ProcessingError reports a failure inside the removal pipeline. Op names
// the stage that failed.
type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	return "processing " + e.Op + ": " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Err }
