package views

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/views/components"
)

type rentTab struct {
	mv      *MainView
	rows    []controllers.PaymentRow
	table   *components.RecordTable
	actions *components.ActionBar
}

func newRentTab(mv *MainView) *rentTab {
	r := &rentTab{mv: mv}
	r.table = components.NewRecordTable(
		[]components.Column{
			{Title: "ID", Width: 60},
			{Title: "Payment Date", Width: 120},
			{Title: "Tenant", Width: 200},
			{Title: "Amount", Width: 130},
			{Title: "Method", Width: 130},
			{Title: "For Month", Width: 100},
			{Title: "Late Fee", Width: 110},
			{Title: "Total", Width: 130},
		},
		func() int { return len(r.rows) },
		func(row, col int) string {
			p := r.rows[row]
			return [...]string{idText(p.ID), p.Date, p.Tenant, p.Amount, p.Method, p.Month, p.LateFee, p.Total}[col]
		},
	)
	r.actions = components.NewActionBar(
		components.Action{Label: "Record Payment", Icon: theme.ContentAddIcon(), Primary: true, Handler: r.showPaymentForm},
		components.Action{Label: "View Receipt", Icon: theme.DocumentPrintIcon(), NeedsSelection: true, Handler: r.showReceipt},
	)
	r.table.SetSelectionHandler(func(row int) { r.actions.SetSelectionActive(row >= 0) })
	return r
}

func (r *rentTab) content() fyne.CanvasObject {
	return container.NewBorder(r.actions.GetContainer(), nil, nil, nil, r.table.Widget())
}

func (r *rentTab) setRows(rows []controllers.PaymentRow) {
	r.rows = rows
	r.table.Reload()
	r.actions.SetSelectionActive(false)
}

func (r *rentTab) showReceipt() {
	row := r.table.Selected()
	if row < 0 {
		r.mv.ShowInfo("Warning", "Please select a payment first")
		return
	}
	r.mv.controller.ShowReceipt(r.rows[row].ID)
}

func (r *rentTab) showPaymentForm() {
	ctrl := r.mv.controller
	tenants := ctrl.ActiveTenantChoices()
	if len(tenants) == 0 {
		r.mv.ShowInfo("Record Payment", "There are no active tenants")
		return
	}

	today := time.Now()
	amount := widget.NewEntry()
	amount.SetPlaceHolder("0.00")
	date := widget.NewEntry()
	date.SetPlaceHolder(models.DateLayout)
	date.SetText(today.Format(models.DateLayout))
	month := widget.NewEntry()
	month.SetPlaceHolder("MM-YYYY")
	month.SetText(models.MonthYearOf(today))
	method := widget.NewSelect(models.PaymentMethods, nil)
	method.SetSelected(models.MethodCash)
	lateFee := widget.NewEntry()
	lateFee.SetText(formatAmount(0))
	notes := widget.NewMultiLineEntry()
	notes.SetMinRowsVisible(2)

	suggest := func() {
		paidOn, err := models.ParseDate(strings.TrimSpace(date.Text))
		if err != nil {
			return
		}
		lateFee.SetText(formatAmount(ctrl.SuggestLateFee(strings.TrimSpace(month.Text), paidOn)))
	}
	date.OnChanged = func(string) { suggest() }
	month.OnChanged = func(string) { suggest() }

	tenant := widget.NewSelect(choiceLabels(tenants), func(label string) {
		var p formParser
		id := p.choice(tenants, label)
		if id == 0 {
			return
		}
		if in := ctrl.PaymentDefaults(id); in != nil {
			amount.SetText(formatAmount(in.Amount))
		}
		suggest()
	})
	tenant.PlaceHolder = "Select tenant"

	items := []*widget.FormItem{
		requiredItem("Tenant", tenant),
		requiredItem("Amount", amount),
		requiredItem("Payment Date", date),
		requiredItem("For Month", month),
		requiredItem("Method", method),
		widget.NewFormItem("Late Fee", lateFee),
		widget.NewFormItem("Notes", notes),
	}

	r.mv.showFormDialog("Record Rent Payment", "Save", items, func() bool {
		in, err := parsePaymentForm(paymentFormValues{
			Tenant:  tenant.Selected,
			Amount:  amount.Text,
			Date:    date.Text,
			Month:   month.Text,
			Method:  method.Selected,
			LateFee: lateFee.Text,
			Notes:   notes.Text,
		}, tenants, r.mv.opts.Currency)
		if err != nil {
			ctrl.ReportError("record payment", err)
			return false
		}
		return ctrl.RecordPayment(in)
	})
}
