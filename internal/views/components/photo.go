package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PhotoSize is the edge of the square photo area in the tenant details.
const PhotoSize = 200

// PhotoDisplay shows a tenant's ID photo, or a placeholder when there is none.
type PhotoDisplay struct {
	container *fyne.Container
	photo     *canvas.Image
	caption   *widget.Label
	hasPhoto  bool
}

func NewPhotoDisplay() *PhotoDisplay {
	pd := &PhotoDisplay{}
	pd.photo = canvas.NewImageFromImage(placeholderImage())
	pd.photo.FillMode = canvas.ImageFillContain
	pd.photo.ScaleMode = canvas.ImageScaleSmooth
	pd.photo.SetMinSize(fyne.NewSize(PhotoSize, PhotoSize))
	pd.caption = widget.NewLabel("No photo")
	pd.caption.Alignment = fyne.TextAlignCenter

	pd.container = container.NewVBox(
		container.NewStack(canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 252, A: 255}), pd.photo),
		pd.caption,
	)
	return pd
}

// placeholderImage is a light grey square with a border.
func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, PhotoSize, PhotoSize))
	fill := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < PhotoSize; y++ {
		for x := 0; x < PhotoSize; x++ {
			if x == 0 || y == 0 || x == PhotoSize-1 || y == PhotoSize-1 {
				img.Set(x, y, border)
			} else {
				img.Set(x, y, fill)
			}
		}
	}
	return img
}

// SetImage shows img, or the placeholder with caption when img is nil.
func (pd *PhotoDisplay) SetImage(img image.Image, caption string) {
	if img != nil {
		pd.photo.Image = img
		pd.hasPhoto = true
	} else {
		pd.photo.Image = placeholderImage()
		pd.hasPhoto = false
	}
	pd.caption.SetText(caption)
	pd.photo.Refresh()
}

func (pd *PhotoDisplay) HasPhoto() bool {
	return pd.hasPhoto
}

func (pd *PhotoDisplay) GetContainer() *fyne.Container {
	return pd.container
}
