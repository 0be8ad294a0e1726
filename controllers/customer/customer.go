package customer

import (
	"errors"

	"customer-records/logger"
	customerService "customer-records/services/customer"
	"customer-records/types"
	customerTypes "customer-records/types/customer"
	"customer-records/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CustomerController handles customer-related HTTP requests
type CustomerController struct {
	DB      *gorm.DB
	Service *customerService.Service
	Logger  *logger.AsyncLogger
}

// NewCustomerController creates a new customer controller
func NewCustomerController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *CustomerController {
	return &CustomerController{
		DB:      db,
		Service: customerService.NewCustomerService(db),
		Logger:  asyncLogger,
	}
}

// Helper function to log API requests and responses
func (cc *CustomerController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	cc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (cc *CustomerController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	cc.logAPIRequest(c)
	return result
}

// Store creates a new customer
func (cc *CustomerController) Store(c *fiber.Ctx) error {
	var req customerTypes.StoreCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse customer request body", err)
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "All fields are required.",
			Data:    nil,
		})
	}

	record, err := cc.Service.Create(req)
	if err != nil {
		if errors.Is(err, customerService.ErrDuplicatePhone) {
			return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Phone number already exists.",
				Data:    nil,
			})
		}
		logger.Error("Failed to create customer", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Customer created successfully",
		Data:    record,
	})
}

// Index lists customers with search, sorting, pagination and address counts
func (cc *CustomerController) Index(c *fiber.Ctx) error {
	query := customerTypes.ListCustomersQuery{
		Search:  c.Query("search"),
		City:    c.Query("city"),
		State:   c.Query("state"),
		PinCode: c.Query("pincode"),
		SortBy:  c.Query("sort_by"),
		Order:   c.Query("order"),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 10),
	}

	result, err := cc.Service.List(query)
	if err != nil {
		if errors.Is(err, customerService.ErrInvalidSortColumn) || errors.Is(err, customerService.ErrInvalidSortOrder) {
			return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Data:    nil,
			})
		}
		logger.Error("Failed to list customers", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "success",
		Data: fiber.Map{
			"data":       result.Customers,
			"pagination": result.Pagination,
		},
	})
}

// Show fetches one customer by id
func (cc *CustomerController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer id",
			Data:    nil,
		})
	}

	record, err := cc.Service.Get(uint(id))
	if err != nil {
		if errors.Is(err, customerService.ErrCustomerNotFound) {
			return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Customer not found.",
				Data:    nil,
			})
		}
		logger.Error("Failed to load customer", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "success",
		Data:    record,
	})
}

// Update replaces a customer's fields
func (cc *CustomerController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer id",
			Data:    nil,
		})
	}

	var req customerTypes.StoreCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse customer request body", err)
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "All fields are required.",
			Data:    nil,
		})
	}

	record, err := cc.Service.Update(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, customerService.ErrCustomerNotFound):
			return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Customer not found.",
				Data:    nil,
			})
		case errors.Is(err, customerService.ErrDuplicatePhone):
			return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Phone number already exists.",
				Data:    nil,
			})
		}
		logger.Error("Failed to update customer", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customer updated successfully",
		Data:    record,
	})
}

// Destroy deletes a customer together with all of its addresses
func (cc *CustomerController) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer id",
			Data:    nil,
		})
	}

	if err := cc.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, customerService.ErrCustomerNotFound) {
			return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Customer not found.",
				Data:    nil,
			})
		}
		logger.Error("Failed to delete customer", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	result := c.SendStatus(fiber.StatusNoContent)
	cc.logAPIRequest(c)
	return result
}
