package views

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/services"
	"tenant-ledger/internal/views/components"
)

const (
	noProperty   = "None"
	toggleAction = 3 // index of the Deactivate/Reactivate button
)

type tenantsTab struct {
	mv      *MainView
	rows    []controllers.TenantRow
	table   *components.RecordTable
	actions *components.ActionBar
}

func newTenantsTab(mv *MainView) *tenantsTab {
	t := &tenantsTab{mv: mv}
	t.table = components.NewRecordTable(
		[]components.Column{
			{Title: "ID", Width: 60},
			{Title: "Name", Width: 260},
			{Title: "Phone", Width: 150},
			{Title: "Monthly Rent", Width: 140},
			{Title: "Status", Width: 100},
		},
		func() int { return len(t.rows) },
		func(row, col int) string {
			r := t.rows[row]
			switch col {
			case 0:
				return idText(r.ID)
			case 1:
				return r.Name
			case 2:
				return r.Phone
			case 3:
				return r.Rent
			default:
				return r.Status
			}
		},
	)
	t.actions = components.NewActionBar(
		components.Action{Label: "Add Tenant", Icon: theme.ContentAddIcon(), Primary: true, Handler: t.showAddForm},
		components.Action{Label: "Edit", Icon: theme.DocumentCreateIcon(), NeedsSelection: true, Handler: t.showEditForm},
		components.Action{Label: "View Details", Icon: theme.InfoIcon(), NeedsSelection: true, Handler: t.viewDetails},
		components.Action{Label: "Deactivate", Icon: theme.CancelIcon(), NeedsSelection: true, Handler: t.toggleStatus},
		components.Action{Label: "Deposit Refunded", Icon: theme.ConfirmIcon(), NeedsSelection: true, Handler: t.refundDeposit},
	)
	t.table.SetSelectionHandler(t.onSelected)
	return t
}

func (t *tenantsTab) content() fyne.CanvasObject {
	return container.NewBorder(t.actions.GetContainer(), nil, nil, nil, t.table.Widget())
}

func (t *tenantsTab) setRows(rows []controllers.TenantRow) {
	t.rows = rows
	t.table.Reload()
	t.actions.SetSelectionActive(false)
}

func (t *tenantsTab) onSelected(row int) {
	t.actions.SetSelectionActive(row >= 0)
	if row < 0 || row >= len(t.rows) {
		return
	}
	if t.rows[row].Active {
		t.actions.SetLabel(toggleAction, "Deactivate")
	} else {
		t.actions.SetLabel(toggleAction, "Reactivate")
	}
}

// selectedID returns the ID of the selected tenant, or false when no row is
// selected.
func (t *tenantsTab) selectedID() (uint, bool) {
	row := t.table.Selected()
	if row < 0 || row >= len(t.rows) {
		t.mv.ShowInfo("Warning", "Please select a tenant first")
		return 0, false
	}
	return t.rows[row].ID, true
}

// tenantForm holds the widgets of the add and edit forms.
type tenantForm struct {
	name, phone, email, rent, moveIn, notes, photo *widget.Entry
	property                                       *widget.Select
	properties                                     []controllers.Choice
	items                                          []*widget.FormItem
}

func (t *tenantsTab) newTenantForm() *tenantForm {
	f := &tenantForm{
		name:       widget.NewEntry(),
		phone:      widget.NewEntry(),
		email:      widget.NewEntry(),
		rent:       widget.NewEntry(),
		moveIn:     widget.NewEntry(),
		notes:      widget.NewMultiLineEntry(),
		properties: t.mv.controller.PropertyChoices(),
	}
	f.phone.SetPlaceHolder("10+ digits")
	f.rent.SetPlaceHolder("0.00")
	f.moveIn.SetPlaceHolder(models.DateLayout)
	f.moveIn.SetText(time.Now().Format(models.DateLayout))
	f.notes.SetMinRowsVisible(3)
	f.property = widget.NewSelect(append([]string{noProperty}, choiceLabels(f.properties)...), nil)
	f.property.SetSelected(noProperty)

	var photoRow fyne.CanvasObject
	f.photo, photoRow = t.mv.filePicker("ID photo (optional)", imageExtensions)

	f.items = []*widget.FormItem{
		requiredItem("Full Name", f.name),
		requiredItem("Phone", f.phone),
		widget.NewFormItem("Email", f.email),
		requiredItem("Monthly Rent", f.rent),
		requiredItem("Move-in Date", f.moveIn),
		widget.NewFormItem("Property", f.property),
		widget.NewFormItem("ID Photo", photoRow),
		widget.NewFormItem("Notes", f.notes),
	}
	return f
}

func (f *tenantForm) input(symbol string) (services.TenantInput, error) {
	return parseTenantForm(tenantFormValues{
		Name:     f.name.Text,
		Phone:    f.phone.Text,
		Email:    f.email.Text,
		Rent:     f.rent.Text,
		MoveIn:   f.moveIn.Text,
		Notes:    f.notes.Text,
		Photo:    f.photo.Text,
		Property: f.property.Selected,
	}, f.properties, symbol)
}

func (t *tenantsTab) showAddForm() {
	f := t.newTenantForm()
	t.mv.showFormDialog("Add New Tenant", "Save", f.items, func() bool {
		in, err := f.input(t.mv.opts.Currency)
		if err != nil {
			t.mv.controller.ReportError("add tenant", err)
			return false
		}
		return t.mv.controller.AddTenant(in)
	})
}

func (t *tenantsTab) showEditForm() {
	id, ok := t.selectedID()
	if !ok {
		return
	}
	current, ok := t.mv.controller.EditTenant(id)
	if !ok {
		return
	}

	f := t.newTenantForm()
	f.name.SetText(current.FullName)
	f.phone.SetText(current.Phone)
	f.email.SetText(current.Email)
	f.rent.SetText(formatAmount(current.RentAmount))
	f.moveIn.SetText(current.MoveInDate.Format(models.DateLayout))
	f.notes.SetText(current.Notes)
	f.photo.SetPlaceHolder("Keep current photo")
	if current.PropertyID != nil {
		for _, c := range f.properties {
			if c.ID == *current.PropertyID {
				f.property.SetSelected(c.Label)
			}
		}
	}

	t.mv.showFormDialog("Edit Tenant", "Save", f.items, func() bool {
		in, err := f.input(t.mv.opts.Currency)
		if err != nil {
			t.mv.controller.ReportError("update tenant", err)
			return false
		}
		return t.mv.controller.UpdateTenant(id, in)
	})
}

func (t *tenantsTab) viewDetails() {
	if id, ok := t.selectedID(); ok {
		t.mv.controller.ViewTenantDetails(id)
	}
}

func (t *tenantsTab) toggleStatus() {
	if id, ok := t.selectedID(); ok {
		t.mv.controller.ToggleTenantStatus(id)
	}
}

func (t *tenantsTab) refundDeposit() {
	if id, ok := t.selectedID(); ok {
		t.mv.controller.MarkDepositRefunded(id)
	}
}
