package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/savioomio/sistema-notas-posto/internal/events"
	"github.com/savioomio/sistema-notas-posto/internal/models"
	"github.com/savioomio/sistema-notas-posto/internal/validation"
)

// InvoiceStore holds the invoice queries and the transactional write path.
// Invoice writes fan out to line items, so create/update/delete run inside one
// transaction each; any failure rolls the whole operation back.
type InvoiceStore struct {
	db  *gorm.DB
	hub *events.Hub
}

func NewInvoiceStore(db *gorm.DB, hub *events.Hub) *InvoiceStore {
	return &InvoiceStore{db: db, hub: hub}
}

// ProductInput is one line item in a write payload.
type ProductInput struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// InvoiceInput is the write payload for create/update. A zero PurchaseDate
// defaults to now at create time.
type InvoiceInput struct {
	ClientID     uint
	PurchaseDate time.Time
	DueDate      time.Time
	Status       string
	TotalValue   float64
	Products     []ProductInput
}

func (in InvoiceInput) validate() error {
	v := make(validation.Violations)
	if in.ClientID == 0 {
		v["client_id"] = "required"
	}
	validation.RequiredTime("due_date", in.DueDate, v)
	validation.Required("status", in.Status, v)
	if in.Status != "" {
		validation.OneOf("status", in.Status, []string{models.InvoiceStatusPending, models.InvoiceStatusPaid}, v)
	}
	validation.PositiveFloat("total_value", in.TotalValue, v)
	for _, p := range in.Products {
		validation.Required("products.name", p.Name, v)
	}
	if !v.Empty() {
		return validationErr(v)
	}
	return nil
}

const invoiceWithClient = "invoices.*, clients.name AS client_name, clients.document AS client_document"

func (s *InvoiceStore) joined() *gorm.DB {
	return s.db.Model(&models.Invoice{}).
		Joins("JOIN clients ON clients.id = invoices.client_id").
		Select(invoiceWithClient)
}

func (s *InvoiceStore) applyStatusFilter(q *gorm.DB, f InvoiceStatusFilter, today time.Time) *gorm.DB {
	switch f {
	case InvoiceStatusPending:
		return q.Where("invoices.status = ?", models.InvoiceStatusPending)
	case InvoiceStatusPaid:
		return q.Where("invoices.status = ?", models.InvoiceStatusPaid)
	case InvoiceStatusOverdue:
		return q.Where(overdueInvoiceCond, overdueArgs(today)...)
	}
	return q
}

// orderClause resolves the layered sort flags: when several are set the last
// applied wins, purchase over due over value. With none set the listing falls
// back to most recent purchases first.
func (f InvoiceFilters) orderClause() string {
	switch {
	case f.PurchaseOrder != SortNone:
		return "invoices.purchase_date " + f.PurchaseOrder.direction()
	case f.DueOrder != SortNone:
		return "invoices.due_date " + f.DueOrder.direction()
	case f.ValueOrder != SortNone:
		return "invoices.total_value " + f.ValueOrder.direction()
	}
	return "invoices.purchase_date DESC"
}

// List returns one page of invoices with joined client columns and nested
// products.
func (s *InvoiceStore) List(page, limit int, f InvoiceFilters) ([]models.Invoice, Pagination, error) {
	today := Today()

	total, err := s.Count(f)
	if err != nil {
		return nil, Pagination{}, err
	}

	invoices := []models.Invoice{}
	q := s.applyStatusFilter(s.joined(), f.Status, today).
		Order(f.orderClause()).
		Limit(limit).Offset(offsetFor(page, limit)).
		Preload("Products")
	if err := q.Find(&invoices).Error; err != nil {
		return nil, Pagination{}, err
	}
	return invoices, paginate(page, limit, total), nil
}

// Count applies the same predicate as List without pagination.
func (s *InvoiceStore) Count(f InvoiceFilters) (int64, error) {
	var total int64
	q := s.applyStatusFilter(s.db.Model(&models.Invoice{}), f.Status, Today())
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetByID returns one invoice with client columns and products.
func (s *InvoiceStore) GetByID(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.joined().Where("invoices.id = ?", id).Preload("Products").First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListByClient returns one client's invoices, pending before paid and most
// recent purchases first within each group.
func (s *InvoiceStore) ListByClient(clientID uint, page, limit int) ([]models.Invoice, Pagination, error) {
	var exists int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", clientID).Count(&exists).Error; err != nil {
		return nil, Pagination{}, err
	}
	if exists == 0 {
		return nil, Pagination{}, ErrClientNotFound
	}

	var total int64
	if err := s.db.Model(&models.Invoice{}).Where("client_id = ?", clientID).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	invoices := []models.Invoice{}
	err := s.joined().
		Where("invoices.client_id = ?", clientID).
		Order("CASE WHEN invoices.status = 'pending' THEN 0 ELSE 1 END, invoices.purchase_date DESC").
		Limit(limit).Offset(offsetFor(page, limit)).
		Preload("Products").
		Find(&invoices).Error
	if err != nil {
		return nil, Pagination{}, err
	}
	return invoices, paginate(page, limit, total), nil
}

// Create inserts the invoice row and its line items atomically. On any failure
// nothing persists.
func (s *InvoiceStore) Create(in InvoiceInput) (*models.Invoice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.clientMustExist(in.ClientID); err != nil {
		return nil, err
	}

	inv := models.Invoice{
		ClientID:     in.ClientID,
		PurchaseDate: in.PurchaseDate,
		DueDate:      in.DueDate,
		Status:       in.Status,
		TotalValue:   in.TotalValue,
	}
	if inv.PurchaseDate.IsZero() {
		inv.PurchaseDate = time.Now()
	}
	if inv.Status == models.InvoiceStatusPaid {
		now := time.Now()
		inv.PaymentDate = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Create(&inv).Error; err != nil {
			return err
		}
		return insertProducts(tx, inv.ID, in.Products)
	})
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.Event{Entity: events.EntityInvoice, Action: events.ActionCreated, ID: inv.ID})
	return s.GetByID(inv.ID)
}

// Update rewrites the invoice row and replaces the whole line-item set
// (delete-all then re-insert), atomically. A pending invoice transitioning to
// paid gets its payment date stamped; an invoice that was already paid keeps
// the original payment date.
func (s *InvoiceStore) Update(id uint, in InvoiceInput) (*models.Invoice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.clientMustExist(in.ClientID); err != nil {
		return nil, err
	}

	purchase := in.PurchaseDate
	if purchase.IsZero() {
		purchase = current.PurchaseDate
	}

	var payment *time.Time
	switch {
	case in.Status == models.InvoiceStatusPaid && current.PaymentDate != nil:
		payment = current.PaymentDate
	case in.Status == models.InvoiceStatusPaid:
		now := time.Now()
		payment = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"client_id":     in.ClientID,
			"purchase_date": purchase,
			"due_date":      in.DueDate,
			"status":        in.Status,
			"total_value":   in.TotalValue,
			"payment_date":  payment,
		}
		if err := tx.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceProduct{}).Error; err != nil {
			return err
		}
		return insertProducts(tx, id, in.Products)
	})
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.Event{Entity: events.EntityInvoice, Action: events.ActionUpdated, ID: id})
	return s.GetByID(id)
}

// Pay marks a pending invoice paid and stamps its payment date. Paying an
// already-paid invoice is a no-op that preserves the original payment date.
func (s *InvoiceStore) Pay(id uint) (*models.Invoice, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.InvoiceStatusPaid {
		return current, nil
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.InvoiceStatusPaid,
		"payment_date": &now,
	}
	if err := s.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(events.Event{Entity: events.EntityInvoice, Action: events.ActionUpdated, ID: id})
	return s.GetByID(id)
}

// Delete removes the invoice and its line items atomically.
func (s *InvoiceStore) Delete(id uint) error {
	var count int64
	if err := s.db.Model(&models.Invoice{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvoiceNotFound
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
	if err != nil {
		return err
	}
	s.hub.Publish(events.Event{Entity: events.EntityInvoice, Action: events.ActionDeleted, ID: id})
	return nil
}

func insertProducts(tx *gorm.DB, invoiceID uint, products []ProductInput) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]models.InvoiceProduct, 0, len(products))
	for _, p := range products {
		rows = append(rows, models.InvoiceProduct{InvoiceID: invoiceID, Name: p.Name, Value: p.Value})
	}
	return tx.Create(&rows).Error
}

func (s *InvoiceStore) clientMustExist(id uint) error {
	var count int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrClientNotFound
	}
	return nil
}
