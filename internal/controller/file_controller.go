package controller

import (
	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const uploadField = "file"

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetContent(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService     service.IFileService
	analysisService service.IAnalysisService
}

func NewFileController(fileService service.IFileService, analysisService service.IAnalysisService) IFileController {
	return &fileController{
		fileService:     fileService,
		analysisService: analysisService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/files")
	h.Get("", c.GetAll)
	h.Post("/upload", c.Upload)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/content", c.GetContent)
	h.Post("/:id/analyze", c.Analyze)
}

func (c *fileController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.fileService.GetAll(ctx.UserContext())
	if err != nil {
		return toHTTPError(err, constant.MsgFailedFetchFiles)
	}
	return ctx.JSON(res)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, constant.MsgNoFileUploaded, err)
	}
	defer form.RemoveAll()

	parts := 0
	for _, headers := range form.File {
		parts += len(headers)
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, constant.MsgNoFileUploaded, nil)
	}
	if parts > 1 {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, constant.MsgSingleFileOnly, nil)
	}

	header := headers[0]
	body, err := header.Open()
	if err != nil {
		return serverutils.NewHTTPError(fiber.StatusInternalServerError, constant.MsgFailedUpload, err)
	}
	defer body.Close()

	res, err := c.fileService.Upload(ctx.UserContext(), &dto.UploadFileRequest{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get(fiber.HeaderContentType),
		Size:         header.Size,
		Body:         body,
	})
	if err != nil {
		return toHTTPError(err, constant.MsgFailedUpload)
	}
	return ctx.JSON(res)
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	if err := c.fileService.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return toHTTPError(err, constant.MsgFailedDelete)
	}
	return ctx.JSON(serverutils.MessageResponse(constant.MsgFileDeleted))
}

func (c *fileController) GetContent(ctx *fiber.Ctx) error {
	res, err := c.fileService.GetContent(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return toHTTPError(err, constant.MsgFailedGetContent)
	}
	return ctx.JSON(res)
}

func (c *fileController) Analyze(ctx *fiber.Ctx) error {
	res, err := c.analysisService.AnalyzeFile(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return toHTTPError(err, constant.MsgFailedAnalyze)
	}
	return ctx.JSON(res)
}
