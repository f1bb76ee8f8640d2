// Package views renders the ledger with fyne: one tab per record kind, forms
// in dialogs, and every controller message as a dialog or status update.
package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/views/components"
)

// Options carries the settings the views need from the configuration.
type Options struct {
	Currency   string
	WindowDays int
}

// MainView is the main window content. It implements controllers.View.
type MainView struct {
	window     fyne.Window
	controller *controllers.MainController
	opts       Options

	mainContainer *fyne.Container
	tabs          *container.AppTabs
	statusBar     *components.StatusBar

	tenants    *tenantsTab
	rent       *rentTab
	documents  *documentsTab
	properties *propertiesTab
}

var _ controllers.View = (*MainView)(nil)

// NewMainView builds the window content and attaches it to controller.
func NewMainView(window fyne.Window, controller *controllers.MainController, opts Options) *MainView {
	mv := &MainView{
		window:     window,
		controller: controller,
		opts:       opts,
	}

	mv.initializeComponents()
	mv.buildLayout()
	mv.buildMenu()
	controller.SetView(mv)
	return mv
}

func (mv *MainView) initializeComponents() {
	mv.statusBar = components.NewStatusBar()
	mv.tenants = newTenantsTab(mv)
	mv.rent = newRentTab(mv)
	mv.documents = newDocumentsTab(mv)
	mv.properties = newPropertiesTab(mv)
}

func (mv *MainView) buildLayout() {
	mv.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Tenants", theme.AccountIcon(), mv.tenants.content()),
		container.NewTabItemWithIcon("Rent", theme.ListIcon(), mv.rent.content()),
		container.NewTabItemWithIcon("Documents", theme.DocumentIcon(), mv.documents.content()),
		container.NewTabItemWithIcon("Properties", theme.HomeIcon(), mv.properties.content()),
	)
	mv.tabs.SetTabLocation(container.TabLocationLeading)

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.tabs,
	)
	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenu() {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Backup...", mv.showExportDialog),
	)
	tools := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Check Document Expiry", func() { mv.controller.CheckReminders(true) }),
		fyne.NewMenuItem("Refresh", mv.controller.RefreshAll),
	)
	mv.window.SetMainMenu(fyne.NewMainMenu(file, tools))
}

// ShowTenants replaces the tenants table rows.
func (mv *MainView) ShowTenants(rows []controllers.TenantRow) {
	fyne.Do(func() {
		mv.tenants.setRows(rows)
		active := 0
		for _, r := range rows {
			if r.Active {
				active++
			}
		}
		mv.statusBar.SetTenantCounts(len(rows), active)
	})
}

func (mv *MainView) ShowPayments(rows []controllers.PaymentRow) {
	fyne.Do(func() {
		mv.rent.setRows(rows)
	})
}

func (mv *MainView) ShowDocuments(rows []controllers.DocumentRow) {
	fyne.Do(func() {
		mv.documents.setRows(rows)
		flagged := 0
		for _, r := range rows {
			if r.Status != "" {
				flagged++
			}
		}
		mv.statusBar.SetDocumentAlerts(flagged)
	})
}

func (mv *MainView) ShowProperties(rows []controllers.PropertyRow) {
	fyne.Do(func() {
		mv.properties.setRows(rows)
	})
}

func (mv *MainView) ShowTenantDetails(details *controllers.TenantDetails) {
	fyne.Do(func() {
		mv.showDetailsDialog(details)
	})
}

func (mv *MainView) ShowReceipt(paymentID uint, text string) {
	fyne.Do(func() {
		mv.showReceiptDialog(paymentID, text)
	})
}

func (mv *MainView) ShowReminders(title, message string) {
	fyne.Do(func() {
		label := widget.NewLabel(message)
		label.Wrapping = fyne.TextWrapWord
		scroll := container.NewVScroll(label)
		scroll.SetMinSize(fyne.NewSize(460, 220))
		dialog.ShowCustom(title, "OK", scroll, mv.window)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title, message string) {
	fyne.Do(func() {
		label := widget.NewLabel(message)
		label.Wrapping = fyne.TextWrapWord
		d := dialog.NewCustom(title, "OK", label, mv.window)
		d.Resize(fyne.NewSize(420, 0))
		d.Show()
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// Confirm asks a yes/no question and runs onConfirm on yes.
func (mv *MainView) Confirm(title, message string, onConfirm func()) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, func(ok bool) {
			if ok {
				onConfirm()
			}
		}, mv.window)
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}
