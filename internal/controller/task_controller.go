package controller

import (
	"net/url"

	"ai-concierge-be/internal/dto"
	"ai-concierge-be/internal/pkg/serverutils"
	"ai-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
}

type taskController struct {
	service service.ITaskService
}

func NewTaskController(service service.ITaskService) ITaskController {
	return &taskController{service: service}
}

func (c *taskController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/concierge/tasks", serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Post("/:title/complete", c.Complete)
	h.Delete("/:title", c.Remove)
}

func (c *taskController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	userID, _ := ctx.Locals("user_id").(string)

	res, err := c.service.Create(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Task created",
		"data":    res,
	})
}

func (c *taskController) List(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("user_id").(string)

	res, err := c.service.List(ctx.Context(), userID)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Tasks retrieved",
		"data":    res,
	})
}

func (c *taskController) Complete(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("user_id").(string)

	title, err := decodeTitleParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Complete(ctx.Context(), userID, title)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Task completed",
		"data":    res,
	})
}

func (c *taskController) Remove(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("user_id").(string)

	title, err := decodeTitleParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Remove(ctx.Context(), userID, title); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Task removed",
		"data":    nil,
	})
}

func decodeTitleParam(ctx *fiber.Ctx) (string, error) {
	title, err := url.PathUnescape(ctx.Params("title"))
	if err != nil || title == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid title")
	}
	return title, nil
}
