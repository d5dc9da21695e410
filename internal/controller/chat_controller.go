package controller

import (
	"errors"

	"notechat-be/internal/dto"
	"notechat-be/internal/pkg/serverutils"
	"notechat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	History(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
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
	h.Get(":noteId/history", c.History)
	h.Post(":noteId/message", c.Send)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	res, err := c.chatService.GetChatHistory(ctx.Context(), noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show chat history", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), noteId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return ctx.Status(fiber.StatusBadRequest).
				JSON(serverutils.ErrorResponse(400, "Message must not be empty"))
		case errors.Is(err, service.ErrNoteNotFound):
			return ctx.Status(fiber.StatusNotFound).
				JSON(serverutils.ErrorResponse(404, "Note not found"))
		case errors.Is(err, service.ErrNoteNotReady):
			return ctx.Status(fiber.StatusConflict).
				JSON(serverutils.ErrorResponse(409, "Note has no extracted text to chat about yet"))
		case errors.Is(err, service.ErrReplyPending):
			return ctx.Status(fiber.StatusConflict).
				JSON(serverutils.ErrorResponse(409, "A reply is already being generated for this note"))
		default:
			return err
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}
