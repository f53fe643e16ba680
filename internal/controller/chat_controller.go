package controller

import (
	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetMessages(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Get("/messages", c.GetMessages)
	h.Post("/send", c.Send)
	h.Delete("/clear", c.Clear)
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	res, err := c.service.GetMessages(ctx.UserContext())
	if err != nil {
		return toHTTPError(err, constant.MsgFailedFetchMessages)
	}
	return ctx.JSON(res)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, constant.MsgInvalidBody, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, constant.MsgContentRequired, err)
	}

	res, err := c.service.SendMessage(ctx.UserContext(), &req)
	if err != nil {
		return toHTTPError(err, constant.MsgFailedSendMessage)
	}
	return ctx.JSON(res)
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	if err := c.service.ClearHistory(ctx.UserContext()); err != nil {
		return toHTTPError(err, constant.MsgFailedClearChat)
	}
	return ctx.JSON(serverutils.MessageResponse(constant.MsgChatCleared))
}
