package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/services"
	"tenant-ledger/internal/views/components"
)

type propertiesTab struct {
	mv      *MainView
	rows    []controllers.PropertyRow
	table   *components.RecordTable
	actions *components.ActionBar
}

func newPropertiesTab(mv *MainView) *propertiesTab {
	p := &propertiesTab{mv: mv}
	p.table = components.NewRecordTable(
		[]components.Column{
			{Title: "ID", Width: 60},
			{Title: "Address", Width: 320},
			{Title: "Unit", Width: 100},
			{Title: "Notes", Width: 280},
		},
		func() int { return len(p.rows) },
		func(row, col int) string {
			r := p.rows[row]
			return [...]string{idText(r.ID), r.Address, r.Unit, r.Notes}[col]
		},
	)
	p.actions = components.NewActionBar(
		components.Action{Label: "Add Property", Icon: theme.ContentAddIcon(), Primary: true, Handler: p.showPropertyForm},
	)
	return p
}

func (p *propertiesTab) content() fyne.CanvasObject {
	return container.NewBorder(p.actions.GetContainer(), nil, nil, nil, p.table.Widget())
}

func (p *propertiesTab) setRows(rows []controllers.PropertyRow) {
	p.rows = rows
	p.table.Reload()
}

func (p *propertiesTab) showPropertyForm() {
	address := widget.NewEntry()
	unit := widget.NewEntry()
	notes := widget.NewMultiLineEntry()
	notes.SetMinRowsVisible(3)

	items := []*widget.FormItem{
		requiredItem("Address", address),
		widget.NewFormItem("Unit Number", unit),
		widget.NewFormItem("Owner Notes", notes),
	}
	p.mv.showFormDialog("Add Property", "Save", items, func() bool {
		return p.mv.controller.AddProperty(services.PropertyInput{
			Address:    address.Text,
			UnitNumber: unit.Text,
			OwnerNotes: notes.Text,
		})
	})
}
