package controller

import (
	"bufio"
	"context"
	"fmt"

	"ai-concierge-be/internal/dto"
	"ai-concierge-be/internal/pkg/serverutils"
	"ai-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IConciergeController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
	GetAuditTrail(ctx *fiber.Ctx) error
}

type conciergeController struct {
	service  service.IConciergeService
	consumer service.IConsumerService
}

func NewConciergeController(svc service.IConciergeService, consumer service.IConsumerService) IConciergeController {
	return &conciergeController{service: svc, consumer: consumer}
}

func (c *conciergeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/concierge", serverutils.JwtMiddleware)
	h.Post("/chat", c.SendChat)
	h.Post("/feedback/:type", c.SubmitFeedback)
	h.Get("/audit", c.GetAuditTrail)
}

func (c *conciergeController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	userID, _ := ctx.Locals("user_id").(string)

	if req.Stream {
		return c.streamChat(ctx, userID, req.Message)
	}

	res, err := c.service.SendChat(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Chat processed",
		"data":    res,
	})
}

func (c *conciergeController) streamChat(ctx *fiber.Ctx, userID, message string) error {
	// The stream writer runs after this handler returns and the fiber ctx is
	// recycled, so the turn is started with a detached context up front.
	fragments, err := c.service.StreamChat(context.Background(), userID, message)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for fragment := range fragments {
			fmt.Fprintf(w, "data: %s\n\n", fragment)
			if err := w.Flush(); err != nil {
				// Client went away; drain so the producer can finish
				for range fragments {
				}
				return
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

func (c *conciergeController) SubmitFeedback(ctx *fiber.Ctx) error {
	feedbackType := ctx.Params("type")
	if feedbackType != "good_answer" && feedbackType != "bad_answer" {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown feedback type")
	}

	userID, _ := ctx.Locals("user_id").(string)

	res, err := c.service.SubmitFeedback(ctx.Context(), userID, feedbackType == "good_answer")
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Feedback recorded",
		"data":    res,
	})
}

func (c *conciergeController) GetAuditTrail(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Audit trail",
		"data":    c.consumer.AuditTrail(),
	})
}
