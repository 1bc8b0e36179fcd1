package models

import "time"

// Config is the singleton credential row. Exactly one row (id=1) exists at all
// times; db.Connect seeds it on first start.
type Config struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Config) TableName() string { return "config" }
