package responses

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope every handler returns.
type APIResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result,omitempty"`
}
