package res

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
)

// Image type names the PDF writer accepts for direct embedding.
const (
	FormatPNG = "PNG"
	FormatJPG = "JPG"
	FormatGIF = "GIF"
)

// IsSVG reports whether data looks like an SVG document. SVG is XML text,
// so magic-number sniffing cannot detect it.
func IsSVG(data []byte) bool {
	head := bytes.TrimLeft(data[:min(len(data), 512)], " \t\r\n\xef\xbb\xbf")
	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	return bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))
}

// Sniff returns the detected container of data as a file extension ("png",
// "jpg", "gif", "webp", ...), "svg" for SVG text, or "" when unknown.
func Sniff(data []byte) string {
	if IsSVG(data) {
		return "svg"
	}
	t, err := filetype.Match(data)
	if err != nil || t == filetype.Unknown {
		return ""
	}
	return t.Extension
}

// Probe returns the pixel dimensions of an encoded image without decoding
// the pixel data. SVG dimensions come from the document's viewBox.
func Probe(data []byte) (int, int, error) {
	if IsSVG(data) {
		return svgDimensions(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// PrepareForPDF returns bytes the PDF writer can embed plus the matching
// image type string. PNG, JPEG and GIF pass through untouched; SVG is
// rasterized at its intrinsic size; every other decodable format is
// transcoded to PNG.
func PrepareForPDF(data []byte) ([]byte, string, error) {
	switch Sniff(data) {
	case "png":
		return data, FormatPNG, nil
	case "jpg":
		return data, FormatJPG, nil
	case "gif":
		return data, FormatGIF, nil
	case "svg":
		img, err := RasterizeSVG(data, 0, 0)
		if err != nil {
			return nil, "", fmt.Errorf("failed to rasterize SVG: %w", err)
		}
		out, err := encodePNG(img)
		if err != nil {
			return nil, "", err
		}
		return out, FormatPNG, nil
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode image: %w", err)
		}
		out, err := encodePNG(img)
		if err != nil {
			return nil, "", err
		}
		return out, FormatPNG, nil
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
