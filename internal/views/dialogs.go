package views

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/imaging"
	"tenant-ledger/internal/views/components"
)

var (
	imageExtensions    = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}
	documentExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx", ".txt"}
)

// showFormDialog shows a form that stays open until onSubmit reports success.
func (mv *MainView) showFormDialog(title, submit string, items []*widget.FormItem, onSubmit func() bool) {
	form := &widget.Form{Items: items, SubmitText: submit, CancelText: "Cancel"}
	d := dialog.NewCustomWithoutButtons(title, form, mv.window)
	form.OnSubmit = func() {
		if onSubmit() {
			d.Hide()
		}
	}
	form.OnCancel = d.Hide
	d.Resize(fyne.NewSize(520, 0))
	d.Show()
}

// filePicker is an entry holding a file path with a Browse button.
func (mv *MainView) filePicker(placeholder string, extensions []string) (*widget.Entry, fyne.CanvasObject) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	browse := widget.NewButton("Browse...", func() {
		fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil {
				mv.controller.ReportError("choose file", err)
				return
			}
			if r == nil {
				return
			}
			entry.SetText(r.URI().Path())
			_ = r.Close()
		}, mv.window)
		fd.SetFilter(storage.NewExtensionFileFilter(extensions))
		fd.Show()
	})
	return entry, container.NewBorder(nil, nil, nil, browse, entry)
}

func choiceLabels(choices []controllers.Choice) []string {
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	return labels
}

func requiredItem(label string, w fyne.CanvasObject) *widget.FormItem {
	return widget.NewFormItem(label+"*", w)
}

// showDetailsDialog shows the photo, fields, notes and payment history of a tenant.
func (mv *MainView) showDetailsDialog(d *controllers.TenantDetails) {
	photo := components.NewPhotoDisplay()
	if d.PhotoPath != "" {
		img, err := imaging.Thumbnail(d.PhotoPath, components.PhotoSize, components.PhotoSize)
		if err != nil {
			photo.SetImage(nil, "Photo unavailable")
		} else {
			photo.SetImage(img, "ID photo")
		}
	}

	info := widget.NewForm()
	for _, f := range d.Fields {
		value := widget.NewLabel(f[1])
		value.Wrapping = fyne.TextWrapWord
		info.Append(f[0]+":", value)
	}

	top := container.NewBorder(nil, nil, photo.GetContainer(), nil, info)

	notes := widget.NewLabel(d.Notes)
	if d.Notes == "" {
		notes.SetText("-")
	}
	notes.Wrapping = fyne.TextWrapWord

	history := components.NewRecordTable(
		[]components.Column{
			{Title: "Date", Width: 100},
			{Title: "Month", Width: 80},
			{Title: "Amount", Width: 120},
			{Title: "Late Fee", Width: 100},
			{Title: "Method", Width: 120},
		},
		func() int { return len(d.Payments) },
		func(row, col int) string {
			p := d.Payments[row]
			return [...]string{p.Date, p.Month, p.Amount, p.LateFee, p.Method}[col]
		},
	)

	var docs strings.Builder
	for _, doc := range d.Documents {
		fmt.Fprintf(&docs, "%s (expiry %s) %s\n", doc.Type, doc.Expiry, doc.Status)
	}
	docsLabel := widget.NewLabel(strings.TrimSpace(docs.String()))
	if len(d.Documents) == 0 {
		docsLabel.SetText("-")
	}

	body := container.NewBorder(
		container.NewVBox(
			top,
			widget.NewLabelWithStyle("Notes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			notes,
			widget.NewLabelWithStyle("Documents", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			docsLabel,
			widget.NewLabelWithStyle("Payment History ("+d.Summary+")", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		history.Widget(),
	)

	dlg := dialog.NewCustom(d.Name, "Close", body, mv.window)
	dlg.Resize(fyne.NewSize(720, 640))
	dlg.Show()
}

// showReceiptDialog shows a receipt with a button to save it as a text file.
func (mv *MainView) showReceiptDialog(paymentID uint, text string) {
	receipt := widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})

	var dlg dialog.Dialog
	save := widget.NewButton("Save...", func() {
		fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			if err != nil {
				mv.controller.ReportError("save receipt", err)
				return
			}
			if w == nil {
				return
			}
			defer w.Close()
			if mv.controller.SaveReceipt(paymentID, w) {
				dlg.Hide()
			}
		}, mv.window)
		fd.SetFileName(fmt.Sprintf("receipt-%d.txt", paymentID))
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
		fd.Show()
	})

	dlg = dialog.NewCustom("Receipt", "Close", container.NewBorder(nil, save, nil, nil, receipt), mv.window)
	dlg.Show()
}

// showExportDialog writes the YAML backup to a chosen file.
func (mv *MainView) showExportDialog() {
	fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.controller.ReportError("export ledger", err)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if mv.controller.Export(w) {
			dialog.ShowInformation("Export", "Backup written to "+w.URI().Path(), mv.window)
		}
	}, mv.window)
	fd.SetFileName("tenant-ledger-backup.yaml")
	fd.Show()
}
