package dto

import "github.com/influmatch/backend/internal/apperr"

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
	Details any         `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ChannelTypeResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	URLPattern string `json:"url_pattern"`
}
