package sender

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/m3rciful/shopbot/core/logger"
)

// Mock logs outbound messages instead of sending them. It backs MOCK_MODE.
type Mock struct {
	log *slog.Logger
}

var _ Sender = (*Mock)(nil)

// NewMock returns a logging-only sender.
func NewMock() *Mock {
	return &Mock{log: logger.Component("wa.sender")}
}

// SendText logs the message and returns a generated id.
func (m *Mock) SendText(ctx context.Context, chatID, text string) (Receipt, error) {
	id := "mock-" + uuid.NewString()
	logger.LogEvent(ctx, m.log, slog.LevelInfo, "wa.send.mock",
		slog.String("status", "ok"),
		slog.String("op", "sendMessage"),
		slog.String("chat_id", logger.MaskChatID(chatID)),
		slog.String("id_message", id),
		slog.String("text", logger.SanitizeLimit(text, 512)),
	)
	return Receipt{IDMessage: id}, nil
}

// SendButtons logs the message and returns a generated id.
func (m *Mock) SendButtons(ctx context.Context, p ButtonsPayload) (Receipt, error) {
	id := "mock-" + uuid.NewString()
	ids := make([]string, 0, len(p.Buttons))
	for _, b := range p.Buttons {
		ids = append(ids, b.ID)
	}
	preview, _ := logger.SummarizeStrings(ids, 5)
	logger.LogEvent(ctx, m.log, slog.LevelInfo, "wa.send.mock",
		slog.String("status", "ok"),
		slog.String("op", "sendInteractiveButtonsReply"),
		slog.String("chat_id", logger.MaskChatID(p.ChatID)),
		slog.String("id_message", id),
		slog.String("text", logger.SanitizeLimit(p.Body, 512)),
		slog.String("buttons", preview),
	)
	return Receipt{IDMessage: id}, nil
}
