package controller

import (
	"errors"
	"io"

	"notechat-be/internal/pkg/serverutils"
	"notechat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Post("upload", c.Upload)
	h.Get("latest", c.Latest)
	h.Get(":id", c.Show)
}

func (c *noteController) Upload(ctx *fiber.Ctx) error {
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

	res, err := c.noteService.ProcessUpload(ctx.Context(), &service.UploadNoteInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			return ctx.Status(fiber.StatusUnsupportedMediaType).
				JSON(serverutils.ErrorResponse(415, "Only images and PDF files are accepted"))
		}
		if errors.Is(err, service.ErrUploadInFlight) {
			return ctx.Status(fiber.StatusConflict).
				JSON(serverutils.ErrorResponse(409, "Another upload is still being processed"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process note upload", res))
}

func (c *noteController) Latest(ctx *fiber.Ctx) error {
	res, err := c.noteService.GetLatest(ctx.Context())
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(404, "No notes uploaded yet"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show latest note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	res, err := c.noteService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(404, "Note not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}
