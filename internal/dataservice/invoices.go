package dataservice

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"resellpanel_backend/internal/model"
)

type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// BuildInvoice computes the money fields from the line items so the stored
// totals can never disagree with them.
func (s *Service) BuildInvoice(customerID uint, items []InvoiceItem, taxRate, discount decimal.Decimal, dueDate, start, end time.Time, gracePeriod int, notes string) (*model.Invoice, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("invoice needs at least one item")
	}

	subtotal := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item %d: unit price must not be negative", i)
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(taxAmount).Sub(discount)
	if total.IsNegative() {
		return nil, fmt.Errorf("discount exceeds invoice total")
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		CustomerID:  customerID,
		Items:       datatypes.JSON(raw),
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
		Discount:    discount,
		Total:       total,
		DueDate:     dueDate,
		StartDate:   start,
		EndDate:     end,
		GracePeriod: gracePeriod,
		Notes:       notes,
		Status:      model.InvoiceDraft,
	}

	if err := s.db.Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) ListInvoices() ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := s.db.Order("created_at desc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
