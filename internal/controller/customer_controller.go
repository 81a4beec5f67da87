package controller

import (
	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/database"

	"github.com/gofiber/fiber/v2"
)

type CreateCustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ListCustomers backs the invoice form and the customer book.
func ListCustomers(c *fiber.Ctx) error {
	var customers []model.Customer
	if err := database.GetDB().Order("name asc").Find(&customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch customers",
		})
	}
	return c.JSON(fiber.Map{
		"customers": customers,
		"total":     len(customers),
	})
}

func CreateCustomer(c *fiber.Ctx) error {
	input := new(CreateCustomerInput)
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

	customer := model.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	result := database.GetDB().Where(model.Customer{Email: customer.Email}).FirstOrCreate(&customer)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create customer",
		})
	}

	status := fiber.StatusOK
	if result.RowsAffected > 0 {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"customer": customer,
	})
}
