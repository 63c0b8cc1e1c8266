package models

import (
	"errors"
	"time"
)

// BlockedSalesDate is an operator-declared closed period. Ranges are
// inclusive on both ends and may overlap; the calculator treats the union.
type BlockedSalesDate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BlockedSalesDate) Validate() error {
	if b.EndDate.Before(b.StartDate) {
		return errors.New("end date must not be earlier than start date")
	}
	return nil
}
