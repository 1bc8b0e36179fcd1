package store

import (
	"math"
	"time"

	"github.com/savioomio/sistema-notas-posto/internal/models"
)

// Pagination is the envelope every list endpoint returns next to its data.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func paginate(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func offsetFor(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// Today is the current date truncated to day precision in server local time.
// All overdue computations compare against this instant.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Canonical overdue predicate: a pending invoice whose due date has passed.
// Every query that mentions overdue state derives from one of these two
// fragments so that, for a fixed instant, they always agree.
const (
	overdueInvoiceCond = "invoices.status = ? AND invoices.due_date < ?"

	clientOverdueExists = "EXISTS (SELECT 1 FROM invoices WHERE invoices.client_id = clients.id" +
		" AND invoices.status = ? AND invoices.due_date < ?)"
)

func overdueArgs(today time.Time) []interface{} {
	return []interface{}{models.InvoiceStatusPending, today}
}
