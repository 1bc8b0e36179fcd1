package models

import "time"

// Invoice lifecycle states. Paid is terminal in normal flow.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice is a sale record. Products are owned exclusively by the invoice and
// replaced as a whole set on update. Deleting an invoice cascades to its
// products; deleting a client with invoices is blocked instead (guard check in
// the store, not a DB cascade).
type Invoice struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	ClientID     uint             `gorm:"not null;index" json:"client_id"`
	PurchaseDate time.Time        `gorm:"not null" json:"purchase_date"`
	DueDate      time.Time        `gorm:"not null" json:"due_date"`
	Status       string           `gorm:"not null" json:"status"` // pending | paid
	TotalValue   float64          `gorm:"not null" json:"total_value"`
	PaymentDate  *time.Time       `json:"payment_date,omitempty"`
	Products     []InvoiceProduct `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"products"`

	// Joined client columns, populated by list/get queries only.
	ClientName     string `gorm:"->;-:migration" json:"client_name,omitempty"`
	ClientDocument string `gorm:"->;-:migration" json:"client_document,omitempty"`
}

// InvoiceProduct is a line item: a named value component of the invoice total.
type InvoiceProduct struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	Name      string  `gorm:"not null" json:"name"`
	Value     float64 `gorm:"not null" json:"value"`
}
