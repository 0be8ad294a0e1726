package address

import (
	"errors"

	"customer-records/logger"
	customerService "customer-records/services/customer"
	"customer-records/types"
	addressTypes "customer-records/types/address"
	"customer-records/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddressController handles address-related HTTP requests
type AddressController struct {
	DB      *gorm.DB
	Service *customerService.Service
	Logger  *logger.AsyncLogger
}

// NewAddressController creates a new address controller
func NewAddressController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AddressController {
	return &AddressController{
		DB:      db,
		Service: customerService.NewCustomerService(db),
		Logger:  asyncLogger,
	}
}

// Helper function to log API requests and responses
func (ac *AddressController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	ac.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (ac *AddressController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.logAPIRequest(c)
	return result
}

// Store adds an address to a customer
func (ac *AddressController) Store(c *fiber.Ctx) error {
	customerID, err := c.ParamsInt("id")
	if err != nil || customerID < 1 {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer id",
			Data:    nil,
		})
	}

	var req addressTypes.StoreAddressRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse address request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "All address fields are required.",
			Data:    nil,
		})
	}

	record, err := ac.Service.AddAddress(uint(customerID), req)
	if err != nil {
		if errors.Is(err, customerService.ErrCustomerNotFound) {
			return ac.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Customer not found.",
				Data:    nil,
			})
		}
		logger.Error("Failed to create address", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Address created successfully",
		Data:    record,
	})
}

// Index lists every address owned by a customer
func (ac *AddressController) Index(c *fiber.Ctx) error {
	customerID, err := c.ParamsInt("id")
	if err != nil || customerID < 1 {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer id",
			Data:    nil,
		})
	}

	records, err := ac.Service.ListAddresses(uint(customerID))
	if err != nil {
		logger.Error("Failed to list addresses", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "success",
		Data:    records,
	})
}

// Update replaces an address's fields by its own id
func (ac *AddressController) Update(c *fiber.Ctx) error {
	addressID, err := c.ParamsInt("addressId")
	if err != nil || addressID < 1 {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address id",
			Data:    nil,
		})
	}

	var req addressTypes.StoreAddressRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse address request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "All address fields are required.",
			Data:    nil,
		})
	}

	record, err := ac.Service.UpdateAddress(uint(addressID), req)
	if err != nil {
		if errors.Is(err, customerService.ErrAddressNotFound) {
			return ac.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Address not found.",
				Data:    nil,
			})
		}
		logger.Error("Failed to update address", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Address updated successfully",
		Data:    record,
	})
}

// Destroy deletes a single address
func (ac *AddressController) Destroy(c *fiber.Ctx) error {
	addressID, err := c.ParamsInt("addressId")
	if err != nil || addressID < 1 {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address id",
			Data:    nil,
		})
	}

	if err := ac.Service.DeleteAddress(uint(addressID)); err != nil {
		if errors.Is(err, customerService.ErrAddressNotFound) {
			return ac.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Address not found.",
				Data:    nil,
			})
		}
		logger.Error("Failed to delete address", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	result := c.SendStatus(fiber.StatusNoContent)
	ac.logAPIRequest(c)
	return result
}
