package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	gorm.Model
	CustomerID  uint            `json:"customer_id" gorm:"not null;index"`
	Items       datatypes.JSON  `json:"items" gorm:"not null"` // [{description, quantity, unitPrice}]
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,2);not null"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:decimal(10,2);not null"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);not null;default:0"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	DueDate     time.Time       `json:"due_date" gorm:"not null"`
	Notes       string          `json:"notes"`
	StartDate   time.Time       `json:"start_date" gorm:"not null"`
	EndDate     time.Time       `json:"end_date" gorm:"not null"`
	GracePeriod int             `json:"grace_period" gorm:"not null;default:0"`
	Status      InvoiceStatus   `json:"status" gorm:"default:'draft'"`

	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
}
