package controller

import (
	"encoding/base64"
	"io"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	SetActiveSession(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	SendText(ctx *fiber.Ctx) error
	SendAudio(ctx *fiber.Ctx) error
}

type chatController struct {
	sessionService service.ISessionService
	turnService    service.ITurnService
}

func NewChatController(sessionService service.ISessionService, turnService service.ITurnService) IChatController {
	return &chatController{
		sessionService: sessionService,
		turnService:    turnService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("sessions", c.GetAllSessions)
	h.Put("session/active", c.SetActiveSession)
	h.Get("session/:id/history", c.GetChatHistory)
	h.Post("text", c.SendText)
	h.Post("audio", c.SendAudio)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	session, err := c.sessionService.CreateSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	res := dto.CreateSessionResponse{Id: session.Id}
	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var activeId uuid.UUID
	if active := c.sessionService.GetActiveSession(ctx.Context(), userId); active != nil {
		activeId = active.Id
	}

	sessions := c.sessionService.ListSessions(ctx.Context(), userId)
	res := make([]dto.GetAllSessionsResponse, len(sessions))
	for i, s := range sessions {
		res[i] = dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			Active:    s.Id == activeId,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat sessions", res))
}

func (c *chatController) SetActiveSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SetActiveSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if c.sessionService.GetSession(ctx.Context(), userId, req.ChatSessionId) == nil {
		return dto.ErrSessionNotFound
	}
	c.sessionService.SetActiveSession(ctx.Context(), userId, req.ChatSessionId)

	return ctx.JSON(serverutils.SuccessResponse[any]("Success set active chat session", nil))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	session := c.sessionService.GetSession(ctx.Context(), userId, sessionId)
	if session == nil {
		return dto.ErrSessionNotFound
	}

	res := make([]dto.GetChatHistoryResponse, len(session.Messages))
	for i, m := range session.Messages {
		res[i] = dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Lang:      m.Lang,
			ModelUsed: m.ModelUsed,
			AudioRef:  m.AudioRef,
			CreatedAt: m.CreatedAt,
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) SendText(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SendTextChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.turnService.Submit(ctx.Context(), userId, req.ChatSessionId, &service.TurnInput{
		Text: req.Text,
		Lang: req.Lang,
	})
	if err != nil {
		return err
	}

	res := dto.SendChatResponse{
		ChatSessionId:    result.Session.Id,
		ChatSessionTitle: result.Session.Title,
		Sent:             toResponseChat(result.Sent),
		Reply:            toResponseChat(result.Reply),
		Lang:             result.Lang,
		ModelUsed:        result.ModelUsed,
	}

	message := "Success send chat"
	if result.Failed {
		message = "Chat turn failed"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *chatController) SendAudio(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing audio file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	var sessionId *uuid.UUID
	if raw := ctx.FormValue("chat_session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
		}
		sessionId = &id
	}

	result, err := c.turnService.Submit(ctx.Context(), userId, sessionId, &service.TurnInput{
		Audio:         audio,
		AudioFilename: fileHeader.Filename,
		Lang:          ctx.FormValue("lang"),
	})
	if err != nil {
		return err
	}

	res := dto.AudioChatResponse{
		ChatSessionId:    result.Session.Id,
		ChatSessionTitle: result.Session.Title,
		Lang:             result.Lang,
		ModelUsed:        result.ModelUsed,
		AudioFormat:      result.AudioFormat,
	}
	if result.Sent != nil {
		res.UserText = result.Sent.Content
	}
	if result.Reply != nil {
		res.AssistantText = result.Reply.Content
	}
	if len(result.AudioBytes) > 0 {
		res.AudioBase64 = base64.StdEncoding.EncodeToString(result.AudioBytes)
	}

	message := "Success send audio chat"
	if result.Failed {
		message = "Audio chat turn failed"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func toResponseChat(m *entity.ChatMessage) *dto.SendChatResponseChat {
	if m == nil {
		return nil
	}
	return &dto.SendChatResponseChat{
		Id:        m.Id,
		Role:      m.Role,
		Content:   m.Content,
		AudioRef:  m.AudioRef,
		CreatedAt: m.CreatedAt,
	}
}
