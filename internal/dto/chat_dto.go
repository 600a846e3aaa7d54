package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SetActiveSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Lang      string    `json:"lang,omitempty"`
	ModelUsed string    `json:"model_used,omitempty"`
	AudioRef  string    `json:"audio_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendTextChatRequest struct {
	ChatSessionId *uuid.UUID `json:"chat_session_id,omitempty"`
	Text          string     `json:"text" validate:"required"`
	Lang          string     `json:"lang,omitempty"` // "auto" or BCP-47-ish code
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	AudioRef  string    `json:"audio_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Sent             *SendChatResponseChat `json:"sent,omitempty"`
	Reply            *SendChatResponseChat `json:"reply"`
	Lang             string                `json:"lang,omitempty"`
	ModelUsed        string                `json:"model_used,omitempty"`
}

// AudioChatResponse mirrors SendChatResponse but carries the synthesized reply
// audio inline; only the AudioRef survives in the session record.
type AudioChatResponse struct {
	ChatSessionId    uuid.UUID `json:"chat_session_id"`
	ChatSessionTitle string    `json:"title"`
	UserText         string    `json:"user_text"`
	AssistantText    string    `json:"assistant_text"`
	Lang             string    `json:"lang"`
	ModelUsed        string    `json:"model_used"`
	AudioFormat      string    `json:"audio_format,omitempty"`
	AudioBase64      string    `json:"audio_base64,omitempty"`
}
