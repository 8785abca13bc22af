package controller

import (
	"ai-concierge-be/internal/dto"
	"ai-concierge-be/internal/pkg/serverutils"
	"ai-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	VoiceChat(ctx *fiber.Ctx) error
	Synthesize(ctx *fiber.Ctx) error
}

type voiceController struct {
	service service.IVoiceService
}

func NewVoiceController(service service.IVoiceService) IVoiceController {
	return &voiceController{service: service}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/concierge/voice", serverutils.JwtMiddleware)
	h.Post("/", c.VoiceChat)
	h.Post("/synthesize", c.Synthesize)
}

// VoiceChat accepts a multipart "audio" file, answers it as a normal chat
// turn, and responds with the reply as WAV audio. The transcript and reply
// text travel in response headers so clients need not parse the body.
func (c *voiceController) VoiceChat(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing audio file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unreadable audio file")
	}
	defer file.Close()

	userID, _ := ctx.Locals("user_id").(string)

	res, wav, err := c.service.VoiceChat(ctx.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "audio/wav")
	ctx.Set("X-Transcript", res.Transcript)
	return ctx.Send(wav)
}

func (c *voiceController) Synthesize(ctx *fiber.Ctx) error {
	var req dto.SynthesizeRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	wav, err := c.service.Synthesize(ctx.Context(), req.Text)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "audio/wav")
	return ctx.Send(wav)
}
