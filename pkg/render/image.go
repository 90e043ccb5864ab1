package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"sketchlang/pkg/layout"
)

// dataURI re-encodes a decoded image as a base64 PNG data URI suitable for
// an SVG <image> href.
func dataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// containFit scales an imgW x imgH image to fill rect while preserving
// aspect ratio, centered on both axes.
func containFit(rect layout.Rect, imgW, imgH int) (x, y, w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return rect.X, rect.Y, rect.Width, rect.Height
	}
	scale := rect.Width / float64(imgW)
	if s := rect.Height / float64(imgH); s < scale {
		scale = s
	}
	w = float64(imgW) * scale
	h = float64(imgH) * scale
	x = rect.X + (rect.Width-w)/2
	y = rect.Y + (rect.Height-h)/2
	return x, y, w, h
}
