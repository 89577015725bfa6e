package controller

import (
	"errors"

	"vc-copilot-be/internal/pkg/serverutils"
	"vc-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(aiRateLimiter())
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload/:founderId", c.Upload)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	founderId := ctx.Locals("founder_id").(string)

	if ctx.Params("founderId") != founderId {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Cannot upload for another founder"))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file field"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot read uploaded file"))
	}
	defer file.Close()

	res, err := c.documentService.Upload(ctx.Context(), founderId, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFile):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, service.ErrFileTooLarge):
			return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(serverutils.ErrorResponse(413, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}
