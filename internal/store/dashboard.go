package store

import (
	"gorm.io/gorm"

	"github.com/savioomio/sistema-notas-posto/internal/models"
)

// DashboardStore aggregates the landing-page numbers.
type DashboardStore struct {
	db *gorm.DB
}

func NewDashboardStore(db *gorm.DB) *DashboardStore {
	return &DashboardStore{db: db}
}

// DashboardTotals carries the headline aggregates; all zero when no rows match.
type DashboardTotals struct {
	TotalClients    int64   `json:"total_clients"`
	OverdueClients  int64   `json:"overdue_clients"`
	PendingInvoices int64   `json:"pending_invoices"`
	PendingValue    float64 `json:"pending_value"`
	PaidValue       float64 `json:"paid_value"`
}

// Totals computes all dashboard aggregates in a single query so they reflect
// one consistent snapshot.
func (s *DashboardStore) Totals() (*DashboardTotals, error) {
	today := Today()
	var t DashboardTotals
	err := s.db.Raw(`SELECT
		(SELECT COUNT(*) FROM clients) AS total_clients,
		(SELECT COUNT(DISTINCT client_id) FROM invoices WHERE status = ? AND due_date < ?) AS overdue_clients,
		(SELECT COUNT(*) FROM invoices WHERE status = ?) AS pending_invoices,
		(SELECT COALESCE(SUM(total_value), 0) FROM invoices WHERE status = ?) AS pending_value,
		(SELECT COALESCE(SUM(total_value), 0) FROM invoices WHERE status = ?) AS paid_value`,
		models.InvoiceStatusPending, today,
		models.InvoiceStatusPending,
		models.InvoiceStatusPending,
		models.InvoiceStatusPaid,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OverdueClients pages through clients holding at least one overdue invoice.
func (s *DashboardStore) OverdueClients(page, limit int) ([]models.Client, Pagination, error) {
	today := Today()

	base := s.db.Model(&models.Client{}).Where(clientOverdueExists, overdueArgs(today)...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	clients := []models.Client{}
	err := base.Session(&gorm.Session{}).
		Select("clients.*, "+clientOverdueExists+" AS has_overdue", overdueArgs(today)...).
		Order("clients.name ASC").
		Limit(limit).Offset(offsetFor(page, limit)).
		Find(&clients).Error
	if err != nil {
		return nil, Pagination{}, err
	}
	return clients, paginate(page, limit, total), nil
}

// PendingInvoices pages through pending invoices, soonest due first.
func (s *DashboardStore) PendingInvoices(page, limit int) ([]models.Invoice, Pagination, error) {
	var total int64
	if err := s.db.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPending).
		Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	invoices := []models.Invoice{}
	err := s.db.Model(&models.Invoice{}).
		Joins("JOIN clients ON clients.id = invoices.client_id").
		Select(invoiceWithClient).
		Where("invoices.status = ?", models.InvoiceStatusPending).
		Order("invoices.due_date ASC").
		Limit(limit).Offset(offsetFor(page, limit)).
		Preload("Products").
		Find(&invoices).Error
	if err != nil {
		return nil, Pagination{}, err
	}
	return invoices, paginate(page, limit, total), nil
}
