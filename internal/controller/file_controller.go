package controller

import (
	"io"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/responder"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type fileController struct {
	documentService service.IDocumentService
}

func NewFileController(documentService service.IDocumentService) IFileController {
	return &fileController{
		documentService: documentService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Get("list", c.List)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	doc, err := c.documentService.SaveUpload(ctx.Context(), userId, &responder.FileRef{
		Name:     fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		return err
	}

	res := dto.UploadFileResponse{
		DocumentId: doc.Id,
		Filename:   doc.Filename,
		Chunks:     doc.ChunkCount,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload file", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	docs, err := c.documentService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", docs))
}
