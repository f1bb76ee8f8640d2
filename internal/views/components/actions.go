package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Action is a button of an ActionBar.
type Action struct {
	Label          string
	Icon           fyne.Resource
	Primary        bool
	NeedsSelection bool // disabled until a table row is selected
	Handler        func()
}

// ActionBar is the row of buttons above a table.
type ActionBar struct {
	container *fyne.Container
	buttons   []*widget.Button
	actions   []Action
}

func NewActionBar(actions ...Action) *ActionBar {
	ab := &ActionBar{actions: actions}
	objects := make([]fyne.CanvasObject, 0, len(actions))
	for _, a := range actions {
		btn := widget.NewButtonWithIcon(a.Label, a.Icon, a.Handler)
		if a.Primary {
			btn.Importance = widget.HighImportance
		}
		if a.NeedsSelection {
			btn.Disable()
		}
		ab.buttons = append(ab.buttons, btn)
		objects = append(objects, btn)
	}
	ab.container = container.NewHBox(objects...)
	return ab
}

// SetSelectionActive enables or disables the buttons that act on a row.
func (ab *ActionBar) SetSelectionActive(active bool) {
	for i, a := range ab.actions {
		if !a.NeedsSelection {
			continue
		}
		if active {
			ab.buttons[i].Enable()
		} else {
			ab.buttons[i].Disable()
		}
	}
}

// SetLabel renames the button at index i, such as Deactivate to Reactivate.
func (ab *ActionBar) SetLabel(i int, label string) {
	if i >= 0 && i < len(ab.buttons) {
		ab.buttons[i].SetText(label)
	}
}

func (ab *ActionBar) GetContainer() *fyne.Container {
	return ab.container
}
