package controller

import (
	"errors"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/serverutils"
	"vc-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	MagicLink(ctx *fiber.Ctx) error
	Exchange(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("magic-link", c.MagicLink)
	h.Post("exchange", c.Exchange)
}

func (c *authController) MagicLink(ctx *fiber.Ctx) error {
	var req dto.MagicLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RequestMagicLink(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Could not send sign-in code"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Sign-in code sent", res))
}

func (c *authController) Exchange(ctx *fiber.Ctx) error {
	var req dto.ExchangeCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ExchangeCode(ctx.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session issued", res))
}
