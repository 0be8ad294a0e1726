package routes

import (
	"customer-records/controllers/address"
	"customer-records/controllers/customer"
	"customer-records/logger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	customerController := customer.NewCustomerController(db, asyncLogger)
	addressController := address.NewAddressController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Customer Routes
	===============================================================================*/
	api := app.Group("/api")

	customers := api.Group("/customers")
	customers.Post("/", customerController.Store)
	customers.Get("/", customerController.Index)
	customers.Get("/:id", customerController.Show)
	customers.Put("/:id", customerController.Update)
	customers.Delete("/:id", customerController.Destroy)

	/*=============================================================================
	| Address Routes
	===============================================================================*/
	customers.Post("/:id/addresses", addressController.Store)
	customers.Get("/:id/addresses", addressController.Index)

	addresses := api.Group("/addresses")
	addresses.Put("/:addressId", addressController.Update)
	addresses.Delete("/:addressId", addressController.Destroy)
}
