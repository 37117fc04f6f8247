package service

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"ocr-journal-backend/internal/errs"
)

const (
	// Screenshots below this byte size get upscaled before recognition.
	preprocessSizeLimit = 150_000
	// Target long edge after upscaling.
	preprocessTargetEdge = 1200
	preprocessMinScale   = 1.5
	preprocessJPEGQual   = 90
)

// PreprocessImage upscales small screenshots so Vision can read the small
// type they tend to carry. It never fails the pipeline: inputs that are
// large enough, or that cannot be decoded or re-encoded, come back
// unchanged, with an UnsupportedInputError for the caller to log.
func PreprocessImage(imageBytes []byte) ([]byte, error) {
	if len(imageBytes) >= preprocessSizeLimit {
		return imageBytes, nil
	}

	src, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return imageBytes, &errs.UnsupportedInputError{Reason: err.Error()}
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longEdge := w
	if h > longEdge {
		longEdge = h
	}
	if longEdge <= 0 || longEdge >= preprocessTargetEdge {
		return imageBytes, nil
	}

	scale := float64(preprocessTargetEdge) / float64(longEdge)
	if scale < preprocessMinScale {
		scale = preprocessMinScale
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: preprocessJPEGQual}); err != nil {
		return imageBytes, &errs.UnsupportedInputError{Reason: err.Error()}
	}
	return buf.Bytes(), nil
}
