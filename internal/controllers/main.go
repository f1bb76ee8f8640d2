package controllers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"tenant-ledger/internal/apperrors"
	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/services"
)

// View is the surface the controller drives. The fyne MainView implements
// it; tests use a recording fake.
type View interface {
	ShowTenants(rows []TenantRow)
	ShowPayments(rows []PaymentRow)
	ShowDocuments(rows []DocumentRow)
	ShowProperties(rows []PropertyRow)
	ShowTenantDetails(details *TenantDetails)
	ShowReceipt(paymentID uint, text string)
	ShowReminders(title, message string)
	ShowError(title, message string)
	ShowInfo(title, message string)
	Confirm(title, message string, onConfirm func())
	UpdateStatus(status string)
}

// Services bundles the use cases the controller calls.
type Services struct {
	Tenants    *services.TenantService
	Payments   *services.PaymentService
	Documents  *services.DocumentService
	Properties *services.PropertyService
	Reminders  *services.ReminderService
	Exporter   *services.Exporter
}

// Events emitted after successful changes.
const (
	EventTenantsChanged    = "tenants_changed"
	EventPaymentsChanged   = "payments_changed"
	EventDocumentsChanged  = "documents_changed"
	EventPropertiesChanged = "properties_changed"
)

// EventHandler reacts to an application event.
type EventHandler func(data interface{}) error

// MainController turns view actions into service calls and service results
// into view updates. Every error reaches the user through View.ShowError.
type MainController struct {
	svc        Services
	log        logger.Logger
	currency   string
	windowDays int
	now        services.Clock

	view View
	ctx  context.Context

	// Handlers run on the emitting goroutine, which is the UI goroutine for
	// every action started from the view.
	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

func NewMainController(svc Services, currency string, log logger.Logger, now services.Clock) *MainController {
	if log == nil {
		log = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	windowDays := services.DefaultReminderWindow
	if svc.Reminders != nil {
		windowDays = svc.Reminders.WindowDays()
	}

	mc := &MainController{
		svc:           svc,
		log:           log,
		currency:      currency,
		windowDays:    windowDays,
		now:           now,
		ctx:           context.Background(),
		eventHandlers: make(map[string][]EventHandler),
	}
	mc.initializeEventHandlers()
	return mc
}

// SetView attaches the view the controller reports to.
func (mc *MainController) SetView(view View) {
	mc.view = view
}

// SetContext replaces the context used for service calls, typically the
// shutdown manager's.
func (mc *MainController) SetContext(ctx context.Context) {
	mc.ctx = ctx
}

// Start fills every table and runs the document expiry check.
func (mc *MainController) Start() {
	mc.RefreshAll()
	mc.CheckReminders(false)
	mc.status("Ready")
}

func (mc *MainController) RefreshAll() {
	mc.RefreshTenants()
	mc.RefreshPayments()
	mc.RefreshDocuments()
	mc.RefreshProperties()
}

func (mc *MainController) RefreshTenants() {
	tenants, err := mc.svc.Tenants.List(mc.ctx)
	if err != nil {
		mc.handleError("load tenants", err)
		return
	}
	mc.view.ShowTenants(mc.tenantRows(tenants))
}

func (mc *MainController) RefreshPayments() {
	payments, err := mc.svc.Payments.List(mc.ctx)
	if err != nil {
		mc.handleError("load payments", err)
		return
	}
	mc.view.ShowPayments(mc.paymentRows(payments, ""))
}

func (mc *MainController) RefreshDocuments() {
	docs, err := mc.svc.Documents.List(mc.ctx)
	if err != nil {
		mc.handleError("load documents", err)
		return
	}
	mc.view.ShowDocuments(mc.documentRows(docs, mc.now()))
}

func (mc *MainController) RefreshProperties() {
	props, err := mc.svc.Properties.List(mc.ctx)
	if err != nil {
		mc.handleError("load properties", err)
		return
	}
	mc.view.ShowProperties(propertyRows(props))
}

// AddTenant saves the add tenant form. It reports whether the form can close.
func (mc *MainController) AddTenant(in services.TenantInput) bool {
	tenant, err := mc.svc.Tenants.Add(mc.ctx, in)
	if err != nil {
		mc.handleError("add tenant", err)
		return false
	}
	mc.emitEvent(EventTenantsChanged, tenant)
	mc.view.ShowInfo("Success", fmt.Sprintf("Tenant added successfully.\nSecurity deposit: %s", mc.money(tenant.SecurityDeposit)))
	mc.status("Added tenant " + tenant.FullName)
	return true
}

// EditTenant loads the tenant into an edit form input.
func (mc *MainController) EditTenant(id uint) (*services.TenantInput, bool) {
	t, err := mc.svc.Tenants.Get(mc.ctx, id)
	if err != nil {
		mc.handleError("load tenant", err)
		return nil, false
	}
	return &services.TenantInput{
		FullName:   t.FullName,
		Phone:      t.Phone,
		Email:      t.Email,
		RentAmount: t.RentAmount,
		MoveInDate: t.MoveInDate,
		Notes:      t.Notes,
		PropertyID: t.PropertyID,
	}, true
}

// UpdateTenant saves the edit tenant form.
func (mc *MainController) UpdateTenant(id uint, in services.TenantInput) bool {
	tenant, err := mc.svc.Tenants.Update(mc.ctx, id, in)
	if err != nil {
		mc.handleError("update tenant", err)
		return false
	}
	mc.emitEvent(EventTenantsChanged, tenant)
	mc.status("Updated tenant " + tenant.FullName)
	return true
}

// ViewTenantDetails shows the tenant with payment history and documents.
func (mc *MainController) ViewTenantDetails(id uint) {
	tenant, err := mc.svc.Tenants.Get(mc.ctx, id)
	if err != nil {
		mc.handleError("load tenant", err)
		return
	}
	history, err := mc.svc.Payments.History(mc.ctx, id)
	if err != nil {
		mc.handleError("load payment history", err)
		return
	}
	docs, err := mc.svc.Documents.ListByTenant(mc.ctx, id)
	if err != nil {
		mc.handleError("load documents", err)
		return
	}
	mc.view.ShowTenantDetails(mc.tenantDetails(tenant, history, docs))
}

// ToggleTenantStatus asks for confirmation, then deactivates or reactivates.
func (mc *MainController) ToggleTenantStatus(id uint) {
	tenant, err := mc.svc.Tenants.Get(mc.ctx, id)
	if err != nil {
		mc.handleError("load tenant", err)
		return
	}

	action := "deactivate"
	done := "deactivated"
	if !tenant.IsActive {
		action = "reactivate"
		done = "reactivated"
	}

	mc.view.Confirm("Confirm", fmt.Sprintf("Are you sure you want to %s %s?", action, tenant.FullName), func() {
		updated, err := mc.svc.Tenants.ToggleStatus(mc.ctx, id)
		if err != nil {
			mc.handleError(action+" tenant", err)
			return
		}
		mc.emitEvent(EventTenantsChanged, updated)
		mc.view.ShowInfo("Success", "Tenant "+done+" successfully")
		mc.status("Tenant " + updated.FullName + " " + done)
	})
}

// MarkDepositRefunded asks for confirmation, then flags the deposit as returned.
func (mc *MainController) MarkDepositRefunded(id uint) {
	tenant, err := mc.svc.Tenants.Get(mc.ctx, id)
	if err != nil {
		mc.handleError("load tenant", err)
		return
	}
	if tenant.DepositRefunded {
		mc.view.ShowInfo("Deposit", "The deposit of "+tenant.FullName+" was already refunded")
		return
	}

	msg := fmt.Sprintf("Mark the deposit of %s (%s) as refunded?", mc.money(tenant.SecurityDeposit), tenant.FullName)
	mc.view.Confirm("Confirm", msg, func() {
		if err := mc.svc.Tenants.MarkDepositRefunded(mc.ctx, id); err != nil {
			mc.handleError("refund deposit", err)
			return
		}
		mc.emitEvent(EventTenantsChanged, tenant)
		mc.status("Deposit refunded to " + tenant.FullName)
	})
}

// ActiveTenantChoices lists tenants that payments and documents can be recorded for.
func (mc *MainController) ActiveTenantChoices() []Choice {
	tenants, err := mc.svc.Tenants.ListActive(mc.ctx)
	if err != nil {
		mc.handleError("load tenants", err)
		return nil
	}
	choices := make([]Choice, 0, len(tenants))
	for _, t := range tenants {
		choices = append(choices, Choice{ID: t.ID, Label: fmt.Sprintf("%s (#%d)", t.FullName, t.ID)})
	}
	return choices
}

func (mc *MainController) PropertyChoices() []Choice {
	props, err := mc.svc.Properties.List(mc.ctx)
	if err != nil {
		mc.handleError("load properties", err)
		return nil
	}
	choices := make([]Choice, 0, len(props))
	for i := range props {
		choices = append(choices, Choice{ID: props[i].ID, Label: props[i].Label()})
	}
	return choices
}

// PaymentDefaults returns the values the payment form starts with for a tenant.
func (mc *MainController) PaymentDefaults(tenantID uint) *services.PaymentInput {
	in, err := mc.svc.Payments.Prefill(mc.ctx, tenantID)
	if err != nil {
		mc.handleError("prepare payment", err)
		return nil
	}
	return in
}

// SuggestLateFee returns the policy fee, or 0 while the month is incomplete.
func (mc *MainController) SuggestLateFee(monthYear string, paidOn time.Time) float64 {
	fee, err := mc.svc.Payments.SuggestLateFee(monthYear, paidOn)
	if err != nil {
		return 0
	}
	return fee
}

// RecordPayment saves the payment form and offers the receipt.
func (mc *MainController) RecordPayment(in services.PaymentInput) bool {
	payment, err := mc.svc.Payments.Record(mc.ctx, in)
	if err != nil {
		mc.handleError("record payment", err)
		return false
	}
	mc.emitEvent(EventPaymentsChanged, payment)
	mc.status(fmt.Sprintf("Payment recorded: %s", mc.money(payment.Total())))
	mc.ShowReceipt(payment.ID)
	return true
}

// ShowReceipt renders a payment receipt into the receipt dialog.
func (mc *MainController) ShowReceipt(paymentID uint) {
	text, err := mc.svc.Payments.Receipt(mc.ctx, paymentID)
	if err != nil {
		mc.handleError("render receipt", err)
		return
	}
	mc.view.ShowReceipt(paymentID, text)
}

// SaveReceipt writes a receipt to w, such as a file chosen in a save dialog.
func (mc *MainController) SaveReceipt(paymentID uint, w io.Writer) bool {
	text, err := mc.svc.Payments.Receipt(mc.ctx, paymentID)
	if err == nil {
		_, err = io.WriteString(w, text)
	}
	if err != nil {
		mc.handleError("save receipt", services.ErrReceipt.Err(err))
		return false
	}
	mc.status("Receipt saved")
	return true
}

// AddDocument saves the add document form.
func (mc *MainController) AddDocument(in services.DocumentInput) bool {
	doc, err := mc.svc.Documents.Add(mc.ctx, in)
	if err != nil {
		mc.handleError("add document", err)
		return false
	}
	mc.emitEvent(EventDocumentsChanged, doc)
	mc.view.ShowInfo("Success", "Document added successfully")
	return true
}

// AddProperty saves the add property form.
func (mc *MainController) AddProperty(in services.PropertyInput) bool {
	p, err := mc.svc.Properties.Add(mc.ctx, in)
	if err != nil {
		mc.handleError("add property", err)
		return false
	}
	mc.emitEvent(EventPropertiesChanged, p)
	mc.status("Added property " + p.Label())
	return true
}

// CheckReminders runs the expiry check. With always set a dialog is shown
// even when nothing needs attention.
func (mc *MainController) CheckReminders(always bool) {
	r, err := mc.svc.Reminders.Check(mc.ctx, mc.now())
	if err != nil {
		mc.handleError("check document expiry", err)
		return
	}
	if r.Empty() {
		if always {
			mc.view.ShowReminders("Document Reminders", "No documents are expired or expiring soon.")
		}
		return
	}
	mc.view.ShowReminders("Document Reminders", mc.reminderMessage(r))
}

func (mc *MainController) reminderMessage(r *services.Reminders) string {
	now := mc.now()
	var b strings.Builder
	if len(r.Expired) > 0 {
		b.WriteString("Expired:\n")
		for i := range r.Expired {
			d := &r.Expired[i]
			fmt.Fprintf(&b, "  %s - %s (expired %s)\n", tenantName(d), d.DocType, models.FormatDate(d.ExpiryDate, ""))
		}
	}
	if len(r.ExpiringSoon) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Expiring within %d days:\n", mc.windowDays)
		for i := range r.ExpiringSoon {
			d := &r.ExpiringSoon[i]
			fmt.Fprintf(&b, "  %s - %s (%s, %d days left)\n", tenantName(d), d.DocType,
				models.FormatDate(d.ExpiryDate, ""), d.DaysUntilExpiry(now))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func tenantName(d *models.Document) string {
	if d.Tenant != nil {
		return d.Tenant.FullName
	}
	return fmt.Sprintf("Tenant #%d", d.TenantID)
}

// Export writes the YAML backup of the ledger to w.
func (mc *MainController) Export(w io.Writer) bool {
	if err := mc.svc.Exporter.Export(mc.ctx, w); err != nil {
		mc.handleError("export ledger", err)
		return false
	}
	mc.status("Ledger exported")
	return true
}

// Event system

func (mc *MainController) initializeEventHandlers() {
	mc.addEventListener(EventTenantsChanged, mc.onTenantsChanged)
	mc.addEventListener(EventPaymentsChanged, mc.onPaymentsChanged)
	mc.addEventListener(EventDocumentsChanged, mc.onDocumentsChanged)
	mc.addEventListener(EventPropertiesChanged, mc.onPropertiesChanged)
}

func (mc *MainController) addEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()
	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := mc.eventHandlers[eventType]
	mc.eventMu.RUnlock()

	mc.log.Debug("MainController", "event", map[string]interface{}{
		"type":     eventType,
		"handlers": len(handlers),
	})
	for _, h := range handlers {
		if err := h(data); err != nil {
			mc.handleError("handle "+eventType, err)
		}
	}
}

// Tenant changes alter names shown next to payments and documents.
func (mc *MainController) onTenantsChanged(interface{}) error {
	mc.RefreshTenants()
	mc.RefreshPayments()
	mc.RefreshDocuments()
	return nil
}

func (mc *MainController) onPaymentsChanged(interface{}) error {
	mc.RefreshPayments()
	return nil
}

func (mc *MainController) onDocumentsChanged(interface{}) error {
	mc.RefreshDocuments()
	return nil
}

func (mc *MainController) onPropertiesChanged(interface{}) error {
	mc.RefreshProperties()
	return nil
}

// ReportError shows an error raised by the view itself, such as a form
// field that could not be parsed.
func (mc *MainController) ReportError(action string, err error) {
	mc.handleError(action, err)
}

// handleError logs err and shows it in an error dialog. Validation failures
// list every rejected field.
func (mc *MainController) handleError(action string, err error) {
	mc.log.Error("MainController", err, map[string]interface{}{"action": action})

	message := apperrors.Detail(err)
	if ves := services.FieldErrors(err); len(ves) > 0 {
		lines := make([]string, 0, len(ves)+1)
		lines = append(lines, "Please correct the following:")
		for _, ve := range ves {
			lines = append(lines, "- "+ve.Field+" "+ve.ErrStr)
		}
		message = strings.Join(lines, "\n")
	}

	if mc.view != nil {
		mc.view.ShowError(apperrors.Title(err), message)
	}
	mc.status("Failed to " + action)
}

func (mc *MainController) status(s string) {
	if mc.view != nil {
		mc.view.UpdateStatus(s)
	}
}
