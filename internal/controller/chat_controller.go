package controller

import (
	"errors"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/serverutils"
	"vc-copilot-be/internal/service"
	"vc-copilot-be/pkg/responder"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(aiRateLimiter())
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Send)
	h.Post("reset/:founderId", c.Reset)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	founderId := ctx.Locals("founder_id").(string)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	// Identity always comes from the token, never the body.
	req.FounderId = founderId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPersona):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, responder.ErrGenerationTimeout):
			return ctx.Status(fiber.StatusGatewayTimeout).JSON(serverutils.ErrorResponse(504, "Advisor took too long to respond"))
		case errors.Is(err, responder.ErrUpstreamConfig):
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Advisor is not configured"))
		case errors.Is(err, responder.ErrGenerationFailure):
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, "Advisor is unavailable"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Reset(ctx *fiber.Ctx) error {
	founderId := ctx.Locals("founder_id").(string)

	if ctx.Params("founderId") != founderId {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Cannot reset another founder's sessions"))
	}

	personaRaw := ctx.Query("persona", "")

	res, err := c.chatService.Reset(ctx.Context(), founderId, personaRaw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPersona) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset chat", res))
}
