package controller

import (
	"time"

	"resellpanel_backend/internal/dataservice"
	"resellpanel_backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Hard cap mirrored from the bookkeeping form.
const maxTransactionAmount = 1_000_000_000

type CreateTransactionInput struct {
	Date          string  `json:"date"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	Description   string  `json:"description" validate:"required,max=500"`
	Type          string  `json:"type" validate:"required,oneof=income expense"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending completed failed"`
	ReferenceID   string  `json:"reference_id" validate:"max=100"`
	Notes         string  `json:"notes"`
	Category      string  `json:"category"`
}

// CreateTransaction records a bookkeeping entry. Expenses must carry a known
// category; income entries default to "other".
func CreateTransaction(c *fiber.Ctx) error {
	input := new(CreateTransactionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Amount > maxTransactionAmount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount exceeds the allowed maximum",
		})
	}
	if !model.ValidPaymentMethod(input.PaymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payment method",
		})
	}

	txnType := model.TransactionType(input.Type)
	category := input.Category
	if txnType == model.TransactionExpense {
		if !model.ValidExpenseCategory(category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense category",
			})
		}
	} else if category == "" {
		category = model.CategoryOther
	}

	status := model.TransactionStatus(input.Status)
	if status == "" {
		status = model.TransactionCompleted
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid transaction date",
			})
		}
		date = parsed
	}

	txn := model.Transaction{
		Date:          date,
		Amount:        decimal.NewFromFloat(input.Amount).Round(2),
		PaymentMethod: input.PaymentMethod,
		Description:   input.Description,
		Type:          txnType,
		Status:        status,
		ReferenceID:   input.ReferenceID,
		Notes:         input.Notes,
		Category:      category,
	}
	if err := dataSvc.CreateTransaction(&txn); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Transaction recorded",
		"transaction": txn,
	})
}

func ListTransactions(c *fiber.Ctx) error {
	txns, err := dataSvc.ListTransactions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch transactions",
		})
	}
	return c.JSON(fiber.Map{
		"transactions": txns,
		"total":        len(txns),
	})
}

func DeleteTransaction(c *fiber.Ctx) error {
	err := dataSvc.DeleteTransaction(c.Params("id"))
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete transaction",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Transaction deleted",
	})
}

// GetTransactionSummary aggregates the report window containing now (or the
// "at" query parameter) for the requested period.
func GetTransactionSummary(c *fiber.Ctx) error {
	period := dataservice.ReportPeriod(c.Query("period", string(dataservice.PeriodMonthly)))

	at := time.Now()
	if q := c.Query("at"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date",
			})
		}
		at = parsed
	}

	summary, err := dataSvc.SummarizeTransactions(period, at)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"summary": summary,
	})
}

type InvoiceItemInput struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gt=0"`
}

type CreateInvoiceInput struct {
	CustomerID  uint               `json:"customer_id" validate:"required"`
	Items       []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
	TaxRate     float64            `json:"tax_rate" validate:"min=0,max=100"`
	Discount    float64            `json:"discount" validate:"min=0"`
	DueDate     string             `json:"due_date" validate:"required"`
	StartDate   string             `json:"start_date" validate:"required"`
	EndDate     string             `json:"end_date" validate:"required"`
	GracePeriod int                `json:"grace_period" validate:"min=0"`
	Notes       string             `json:"notes"`
}

func CreateInvoice(c *fiber.Ctx) error {
	input := new(CreateInvoiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	dueDate, err1 := time.Parse("2006-01-02", input.DueDate)
	startDate, err2 := time.Parse("2006-01-02", input.StartDate)
	endDate, err3 := time.Parse("2006-01-02", input.EndDate)
	if err1 != nil || err2 != nil || err3 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
	}

	items := make([]dataservice.InvoiceItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, dataservice.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice).Round(2),
		})
	}

	invoice, err := dataSvc.BuildInvoice(
		input.CustomerID,
		items,
		decimal.NewFromFloat(input.TaxRate),
		decimal.NewFromFloat(input.Discount),
		dueDate, startDate, endDate,
		input.GracePeriod,
		input.Notes,
	)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Invoice created",
		"invoice": invoice,
	})
}

func ListInvoices(c *fiber.Ctx) error {
	invoices, err := dataSvc.ListInvoices()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch invoices",
		})
	}
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"total":    len(invoices),
	})
}
