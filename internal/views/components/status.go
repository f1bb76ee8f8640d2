package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the last action and ledger counts along the window bottom.
type StatusBar struct {
	container    *fyne.Container
	statusLabel  *widget.Label
	tenantInfo   *widget.Label
	reminderInfo *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.tenantInfo = widget.NewLabel("Tenants: --")
	sb.reminderInfo = widget.NewLabel("Documents: --")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.tenantInfo,
		widget.NewSeparator(),
		sb.reminderInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetTenantCounts shows how many tenants are on record and active.
func (sb *StatusBar) SetTenantCounts(total, active int) {
	fyne.Do(func() {
		sb.tenantInfo.SetText(fmt.Sprintf("Tenants: %d (%d active)", total, active))
	})
}

// SetDocumentAlerts shows how many documents are flagged.
func (sb *StatusBar) SetDocumentAlerts(flagged int) {
	fyne.Do(func() {
		if flagged == 0 {
			sb.reminderInfo.SetText("Documents: all valid")
			return
		}
		sb.reminderInfo.SetText(fmt.Sprintf("Documents: %d need attention", flagged))
	})
}

func (sb *StatusBar) Reset() {
	fyne.Do(func() {
		sb.statusLabel.SetText("Ready")
		sb.tenantInfo.SetText("Tenants: --")
		sb.reminderInfo.SetText("Documents: --")
	})
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
