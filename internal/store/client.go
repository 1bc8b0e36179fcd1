package store

import (
	"errors"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/savioomio/sistema-notas-posto/internal/events"
	"github.com/savioomio/sistema-notas-posto/internal/models"
	"github.com/savioomio/sistema-notas-posto/internal/validation"
)

// ClientStore holds the parameterized client queries.
type ClientStore struct {
	db  *gorm.DB
	hub *events.Hub
}

func NewClientStore(db *gorm.DB, hub *events.Hub) *ClientStore {
	return &ClientStore{db: db, hub: hub}
}

// ClientInput is the write payload for create/update.
type ClientInput struct {
	Type     string
	Name     string
	Document string
	Address  string
	Phone    string
}

func (in ClientInput) validate() error {
	v := make(validation.Violations)
	validation.Required("type", in.Type, v)
	validation.Required("name", in.Name, v)
	validation.Required("document", in.Document, v)
	validation.Required("phone", in.Phone, v)
	if in.Type != "" {
		validation.OneOf("type", in.Type, []string{models.ClientTypeIndividual, models.ClientTypeOrganization}, v)
	}
	if !v.Empty() {
		return validationErr(v)
	}
	return nil
}

func (s *ClientStore) applyFilters(q *gorm.DB, f ClientFilters, today time.Time) *gorm.DB {
	if f.Type != TypeAll {
		q = q.Where("clients.type = ?", f.Type.value())
	}
	switch f.Status {
	case ClientStatusOverdue:
		q = q.Where(clientOverdueExists, overdueArgs(today)...)
	case ClientStatusRegular:
		q = q.Where("NOT "+clientOverdueExists, overdueArgs(today)...)
	}
	return q
}

// selectWithOverdue projects clients.* plus the computed has_overdue flag.
func (s *ClientStore) selectWithOverdue(q *gorm.DB, today time.Time) *gorm.DB {
	return q.Select("clients.*, "+clientOverdueExists+" AS has_overdue", overdueArgs(today)...)
}

// List returns one page of clients matching f, name-ordered (asc by default).
func (s *ClientStore) List(page, limit int, f ClientFilters) ([]models.Client, Pagination, error) {
	today := Today()

	total, err := s.Count(f)
	if err != nil {
		return nil, Pagination{}, err
	}

	order := "clients.name ASC"
	if f.NameOrder == SortDesc {
		order = "clients.name DESC"
	}

	q := s.applyFilters(s.db.Model(&models.Client{}), f, today)
	q = s.selectWithOverdue(q, today).Order(order).Limit(limit).Offset(offsetFor(page, limit))

	clients := []models.Client{}
	if err := q.Find(&clients).Error; err != nil {
		return nil, Pagination{}, err
	}
	return clients, paginate(page, limit, total), nil
}

// Count applies the same predicate as List without pagination.
func (s *ClientStore) Count(f ClientFilters) (int64, error) {
	var total int64
	q := s.applyFilters(s.db.Model(&models.Client{}), f, Today())
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetByID returns one client with its computed overdue flag.
func (s *ClientStore) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	q := s.selectWithOverdue(s.db.Model(&models.Client{}), Today())
	if err := q.Where("clients.id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// Create inserts a client, rejecting duplicate documents.
func (s *ClientStore) Create(in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&models.Client{}).Where("document = ?", in.Document).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateDocument
	}

	client := models.Client{
		Type:           in.Type,
		Name:           in.Name,
		NameNormalized: NormalizeName(in.Name),
		Document:       in.Document,
		Address:        in.Address,
		Phone:          in.Phone,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(events.Event{Entity: events.EntityClient, Action: events.ActionCreated, ID: client.ID})
	return s.GetByID(client.ID)
}

// Update rewrites a client's mutable fields. Updating with one's own unchanged
// document succeeds; taking another client's document fails.
func (s *ClientStore) Update(id uint, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.mustExist(id); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.Model(&models.Client{}).
		Where("document = ? AND id != ?", in.Document, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateDocument
	}

	updates := map[string]interface{}{
		"type":            in.Type,
		"name":            in.Name,
		"name_normalized": NormalizeName(in.Name),
		"document":        in.Document,
		"address":         in.Address,
		"phone":           in.Phone,
	}
	if err := s.db.Model(&models.Client{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.hub.Publish(events.Event{Entity: events.EntityClient, Action: events.ActionUpdated, ID: id})
	return s.GetByID(id)
}

// Delete removes a client, blocked while any invoice (of any status)
// references it.
func (s *ClientStore) Delete(id uint) error {
	if err := s.mustExist(id); err != nil {
		return err
	}
	var invoices int64
	if err := s.db.Model(&models.Invoice{}).Where("client_id = ?", id).Count(&invoices).Error; err != nil {
		return err
	}
	if invoices > 0 {
		return ErrClientHasInvoices
	}
	if err := s.db.Delete(&models.Client{}, id).Error; err != nil {
		return err
	}
	s.hub.Publish(events.Event{Entity: events.EntityClient, Action: events.ActionDeleted, ID: id})
	return nil
}

var numericQuery = regexp.MustCompile(`^[0-9]+$`)

// Search matches by exact id when the query is purely numeric, otherwise by
// accent- and case-insensitive name containment.
func (s *ClientStore) Search(query string, limit int) ([]models.Client, error) {
	today := Today()
	clients := []models.Client{}

	if numericQuery.MatchString(query) {
		q := s.selectWithOverdue(s.db.Model(&models.Client{}), today)
		if err := q.Where("clients.id = ?", query).Find(&clients).Error; err != nil {
			return nil, err
		}
		return clients, nil
	}

	like := "%" + escapeLike(NormalizeName(query)) + "%"
	q := s.selectWithOverdue(s.db.Model(&models.Client{}), today)
	err := q.Where(`clients.name_normalized LIKE ? ESCAPE '\'`, like).
		Order("clients.name ASC").Limit(limit).Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// ClientStatistics aggregates a client's invoices.
type ClientStatistics struct {
	TotalPaid     float64    `json:"total_paid"`
	TotalPending  float64    `json:"total_pending"`
	PendingCount  int64      `json:"pending_count"`
	FirstPurchase *time.Time `json:"first_purchase"`
}

// Statistics returns paid/pending totals, pending count and the earliest
// purchase date for one client.
func (s *ClientStore) Statistics(id uint) (*ClientStatistics, error) {
	if err := s.mustExist(id); err != nil {
		return nil, err
	}
	var stats ClientStatistics
	err := s.db.Model(&models.Invoice{}).
		Where("client_id = ?", id).
		Select("COALESCE(SUM(CASE WHEN status = ? THEN total_value ELSE 0 END), 0) AS total_paid,"+
			" COALESCE(SUM(CASE WHEN status = ? THEN total_value ELSE 0 END), 0) AS total_pending,"+
			" COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_count,"+
			" MIN(purchase_date) AS first_purchase",
			models.InvoiceStatusPaid, models.InvoiceStatusPending, models.InvoiceStatusPending).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *ClientStore) mustExist(id uint) error {
	var count int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrClientNotFound
	}
	return nil
}
