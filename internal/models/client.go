package models

import "time"

// Client types.
const (
	ClientTypeIndividual   = "individual"
	ClientTypeOrganization = "organization"
)

// Client entity. Document is the national tax/ID number and is unique across
// all clients. NameNormalized holds the lowercased, accent-stripped name and
// backs the search endpoint; store code maintains it on every write.
type Client struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Type           string    `gorm:"not null" json:"type"` // individual | organization
	Name           string    `gorm:"not null;index" json:"name"`
	NameNormalized string    `gorm:"not null;index" json:"-"`
	Document       string    `gorm:"not null;uniqueIndex" json:"document"`
	Address        string    `json:"address"`
	Phone          string    `gorm:"not null" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`

	// Computed per query, never stored: client has at least one pending
	// invoice whose due date has passed.
	HasOverdue bool `gorm:"->;-:migration" json:"has_overdue"`
}
