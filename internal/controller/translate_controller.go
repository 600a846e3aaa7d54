package controller

import (
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITranslateController interface {
	RegisterRoutes(r fiber.Router)
	Translate(ctx *fiber.Ctx) error
	TranslateBatch(ctx *fiber.Ctx) error
}

type translateController struct {
	translateService service.ITranslateService
}

func NewTranslateController(translateService service.ITranslateService) ITranslateController {
	return &translateController{
		translateService: translateService,
	}
}

func (c *translateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/translate/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Translate)
	h.Post("batch", c.TranslateBatch)
}

func (c *translateController) Translate(ctx *fiber.Ctx) error {
	var req dto.TranslateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.translateService.TranslateOne(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success translate", res))
}

func (c *translateController) TranslateBatch(ctx *fiber.Ctx) error {
	var req dto.BatchTranslateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	translations, err := c.translateService.Translate(ctx.Context(), req.Texts, req.TargetLang)
	if err != nil {
		return err
	}

	res := dto.BatchTranslateResponse{Translations: translations}
	return ctx.JSON(serverutils.SuccessResponse("Success translate batch", res))
}
