package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/views/components"
)

type documentsTab struct {
	mv      *MainView
	rows    []controllers.DocumentRow
	table   *components.RecordTable
	actions *components.ActionBar
}

func newDocumentsTab(mv *MainView) *documentsTab {
	d := &documentsTab{mv: mv}
	d.table = components.NewRecordTable(
		[]components.Column{
			{Title: "ID", Width: 60},
			{Title: "Type", Width: 160},
			{Title: "Tenant", Width: 220},
			{Title: "Expiry Date", Width: 120},
			{Title: "Status", Width: 130},
		},
		func() int { return len(d.rows) },
		func(row, col int) string {
			r := d.rows[row]
			return [...]string{idText(r.ID), r.Type, r.Tenant, r.Expiry, r.Status}[col]
		},
	)
	d.actions = components.NewActionBar(
		components.Action{Label: "Add Document", Icon: theme.ContentAddIcon(), Primary: true, Handler: d.showDocumentForm},
		components.Action{Label: "Check Expiry", Icon: theme.WarningIcon(), Handler: func() { mv.controller.CheckReminders(true) }},
	)
	return d
}

func (d *documentsTab) content() fyne.CanvasObject {
	hint := widget.NewLabel(fmt.Sprintf("Documents expiring within %d days are flagged.", d.mv.opts.WindowDays))
	hint.Importance = widget.LowImportance
	return container.NewBorder(d.actions.GetContainer(), hint, nil, nil, d.table.Widget())
}

func (d *documentsTab) setRows(rows []controllers.DocumentRow) {
	d.rows = rows
	d.table.Reload()
}

func (d *documentsTab) showDocumentForm() {
	ctrl := d.mv.controller
	tenants := ctrl.ActiveTenantChoices()
	if len(tenants) == 0 {
		d.mv.ShowInfo("Add Document", "There are no active tenants")
		return
	}

	tenant := widget.NewSelect(choiceLabels(tenants), nil)
	tenant.PlaceHolder = "Select tenant"
	docType := widget.NewSelect(models.DocumentTypes, nil)
	docType.SetSelected(models.DocLease)
	expiry := widget.NewEntry()
	expiry.SetPlaceHolder(models.DateLayout + " (if applicable)")
	file, fileRow := d.mv.filePicker("Document file", documentExtensions)

	items := []*widget.FormItem{
		requiredItem("Tenant", tenant),
		requiredItem("Document Type", docType),
		widget.NewFormItem("Expiry Date", expiry),
		requiredItem("File", fileRow),
	}

	d.mv.showFormDialog("Add Document", "Save", items, func() bool {
		in, err := parseDocumentForm(documentFormValues{
			Tenant: tenant.Selected,
			Type:   docType.Selected,
			Expiry: expiry.Text,
			File:   file.Text,
		}, tenants)
		if err != nil {
			ctrl.ReportError("add document", err)
			return false
		}
		return ctrl.AddDocument(in)
	})
}
