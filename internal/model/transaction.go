package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Manual payment channels; there is no card processor in this system.
const (
	PaymentBkash   = "bkash"
	PaymentNagad   = "nagad"
	PaymentRocket  = "rocket"
	PaymentBinance = "binance"
	PaymentCash    = "cash"
)

var PaymentMethods = []string{PaymentBkash, PaymentNagad, PaymentRocket, PaymentBinance, PaymentCash}

const (
	CategoryFacebookAds       = "facebook_ads"
	CategoryPromotionalVideos = "promotional_videos"
	CategoryPosterDesign      = "poster_design"
	CategoryAdobeConsole      = "adobe_console"
	CategoryOther             = "other"
)

var ExpenseCategories = []string{
	CategoryFacebookAds,
	CategoryPromotionalVideos,
	CategoryPosterDesign,
	CategoryAdobeConsole,
	CategoryOther,
}

// Transaction is a bookkeeping entry, independent of the submission
// lifecycle. Category is required but only meaningful for expenses.
type Transaction struct {
	ID            string            `json:"id" gorm:"primaryKey"`
	Date          time.Time         `json:"date" gorm:"not null;index"`
	Amount        decimal.Decimal   `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod string            `json:"payment_method" gorm:"not null"`
	Description   string            `json:"description" gorm:"not null"`
	Type          TransactionType   `json:"type" gorm:"not null;index"`
	Status        TransactionStatus `json:"status" gorm:"not null"`
	ReferenceID   string            `json:"reference_id"`
	Notes         string            `json:"notes" gorm:"type:text"`
	Category      string            `json:"category" gorm:"not null"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func ValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
