// Package sender delivers replies to WhatsApp through Green API.
package sender

import (
	"context"
	"fmt"
)

// Receipt acknowledges an accepted outbound message.
type Receipt struct {
	IDMessage string `json:"idMessage"`
}

// Button is one interactive reply button.
type Button struct {
	ID    string `json:"buttonId"`
	Label string `json:"buttonText"`
}

// ButtonsPayload is an interactive buttons message.
type ButtonsPayload struct {
	ChatID  string   `json:"chatId"`
	Body    string   `json:"body"`
	Buttons []Button `json:"buttons"`
	Header  string   `json:"header,omitempty"`
	Footer  string   `json:"footer,omitempty"`
}

// Sender is the outbound transport.
type Sender interface {
	SendText(ctx context.Context, chatID, text string) (Receipt, error)
	SendButtons(ctx context.Context, p ButtonsPayload) (Receipt, error)
}

// APIError reports a failed Green API call. StatusCode is zero for network failures.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("green api %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("green api %s: network error: %v", e.Op, e.Err)
}

// Unwrap exposes the transport error.
func (e *APIError) Unwrap() error { return e.Err }

// Code classifies the failure for logs.
func (e *APIError) Code() string {
	switch {
	case e.StatusCode == 0:
		return "network_error"
	case e.StatusCode == 401 || e.StatusCode == 403:
		return "unauthorized"
	case e.StatusCode == 429:
		return "rate_limited"
	case e.StatusCode >= 500:
		return "server_error"
	default:
		return "api_error"
	}
}
