package report

import "fmt"

// LayoutError reports a primitive that cannot be placed on any page, such as
// an image taller than the usable page height. Generation aborts with no
// partial output.
type LayoutError struct {
	// Primitive describes the unit that failed, e.g. "image" or "spacer".
	Primitive string
	// Height is the primitive's measured height in points.
	Height float64
	// Avail is the usable page height in points.
	Avail float64
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout: %s of height %.2fpt does not fit a page (usable height %.2fpt)",
		e.Primitive, e.Height, e.Avail)
}

// InvalidDimensionsError reports an image block whose native dimensions are
// zero or negative. It is raised before layout begins.
type InvalidDimensionsError struct {
	Width  float64
	Height float64
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid image dimensions %gx%g: both must be positive", e.Width, e.Height)
}

// ResourceError reports a referenced external resource, such as the cover
// logo, that could not be obtained. The generator recovers from it with a
// presentation fallback; it never fails a generation.
type ResourceError struct {
	// Source is the path or URL that was tried.
	Source string
	Err    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s unavailable: %v", e.Source, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
