package utils

import (
	"time"

	"customer-records/types"

	"github.com/gofiber/fiber/v2"
)

const maxLoggedBodyBytes = 4096

// CreateSanitizedLogEntry creates a deep copied and truncated log entry for
// the async logger. Copies are required because the fiber context buffers
// are recycled once the handler returns.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := truncateBody(string(append([]byte(nil), c.Body()...)))
	responseBody := truncateBody(string(append([]byte(nil), c.Response().Body()...)))

	return types.LogEntry{
		Method:       method,
		URL:          url,
		RequestBody:  requestBody,
		ResponseBody: responseBody,
		StatusCode:   c.Response().StatusCode(),
		CreatedAt:    time.Now(),
	}
}

// truncateBody caps oversized payloads before they reach the logs table
func truncateBody(body string) string {
	if len(body) > maxLoggedBodyBytes {
		return body[:maxLoggedBodyBytes] + "...[TRUNCATED]"
	}
	return body
}
