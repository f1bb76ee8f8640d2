// Package imaging produces the ID photo previews shown in tenant details.
package imaging

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"tenant-ledger/internal/apperrors"
)

// ThumbnailSize is the bounding box of the tenant details preview.
const ThumbnailSize = 200

var ErrImage apperrors.Error = apperrors.New("could not load image").WithTitle("Image Error")

// Thumbnail decodes the image at path and scales it down to fit maxW×maxH.
func Thumbnail(path string, maxW, maxH int) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, ErrImage.Msg("could not decode " + path)
	}

	w, h := FitWithin(mat.Cols(), mat.Rows(), maxW, maxH)
	if w == 0 || h == 0 {
		return nil, ErrImage.Msg("invalid thumbnail bounds")
	}
	if w == mat.Cols() && h == mat.Rows() {
		return matToRGBA(mat)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
	if resized.Empty() {
		return nil, ErrImage.Msg("resize produced an empty image")
	}
	return matToRGBA(resized)
}

// matToRGBA converts a 3-channel BGR Mat into an RGBA image.
func matToRGBA(src gocv.Mat) (image.Image, error) {
	if src.Channels() != 3 {
		return nil, ErrImage.Msg("unsupported channel count")
	}

	rows, cols := src.Rows(), src.Cols()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := src.GetVecbAt(y, x)
			img.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: 255})
		}
	}
	return img, nil
}
