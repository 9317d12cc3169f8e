package layout

import "github.com/reportkit/reportkit/pkg/report"

// FitImage computes the rendered size of an image in points. Native pixel
// dimensions are taken as points (72 dpi): an image no wider than the
// available column keeps its native size; a wider one is scaled down so its
// width equals availWidth, preserving the aspect ratio exactly. Non-positive
// native dimensions are rejected with InvalidDimensionsError before any
// layout happens.
func FitImage(nativeW, nativeH, availWidth float64) (float64, float64, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return 0, 0, &report.InvalidDimensionsError{Width: nativeW, Height: nativeH}
	}
	if nativeW <= availWidth {
		return nativeW, nativeH, nil
	}
	scale := availWidth / nativeW
	return availWidth, nativeH * scale, nil
}
