package controller

import (
	"errors"

	"vc-copilot-be/internal/pkg/serverutils"
	"vc-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Use(aiRateLimiter())
	h.Use(serverutils.JwtMiddleware)
	h.Post(":founderId", c.Show)
}

func (c *analysisController) Show(ctx *fiber.Ctx) error {
	founderId := ctx.Locals("founder_id").(string)

	if ctx.Params("founderId") != founderId {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Cannot view another founder's analysis"))
	}

	res, err := c.analysisService.Analyze(ctx.Context(), founderId)
	if err != nil {
		if errors.Is(err, service.ErrNoDocuments) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "No documents uploaded yet"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show analysis", res))
}
