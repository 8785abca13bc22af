package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-concierge-be/internal/dto"
	"ai-concierge-be/pkg/grading"
	"ai-concierge-be/pkg/session"
	"ai-concierge-be/pkg/tasks"
)

// ErrorHandlerMiddleware maps domain errors escaping the controllers onto
// HTTP statuses with the standard JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		var malformed *grading.MalformedResponseError
		var upstream *dto.UpstreamError

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, session.ErrNoActiveSession):
			code = fiber.StatusNotFound
			message = "No active session"
		case errors.Is(err, tasks.ErrTaskNotFound):
			code = fiber.StatusNotFound
			message = "Task not found"
		case errors.As(err, &malformed):
			code = fiber.StatusBadGateway
			message = malformed.Error()
		case errors.As(err, &upstream):
			code = fiber.StatusBadGateway
			message = upstream.Error()
		default:
			message = err.Error()
		}

		return ctx.Status(code).JSON(fiber.Map{
			"success": false,
			"code":    code,
			"message": message,
		})
	}
}
