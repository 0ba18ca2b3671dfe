package logger

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
)

// contextKey is a private type to avoid collisions in context.
type contextKey string

const (
	ctxRID         contextKey = "rid"
	ctxChatID      contextKey = "chat_id"
	ctxMessageID   contextKey = "message_id"
	ctxWebhookType contextKey = "type_webhook"
	ctxLogger      contextKey = "logger"
	ctxHandler     contextKey = "handler"
)

// WithLogger stores the provided slog.Logger in context for propagation across layers.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger, log)
}

// FromContext extracts slog.Logger from context or returns the global default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLogger).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if L != nil {
		return L
	}
	return slog.Default()
}

// WithRID attaches request correlation id into context.
func WithRID(ctx context.Context, rid string) context.Context {
	return withString(ctx, ctxRID, rid)
}

// RIDFrom extracts rid from context if present.
func RIDFrom(ctx context.Context) string {
	return stringFrom(ctx, ctxRID)
}

// WithMessageMeta attaches the identifiers of an inbound WhatsApp message.
func WithMessageMeta(ctx context.Context, webhookType, chatID, messageID string) context.Context {
	ctx = withString(ctx, ctxWebhookType, webhookType)
	ctx = withString(ctx, ctxChatID, chatID)
	return withString(ctx, ctxMessageID, messageID)
}

// ChatIDFrom extracts the sender chat id from context.
func ChatIDFrom(ctx context.Context) string {
	return stringFrom(ctx, ctxChatID)
}

// MessageIDFrom extracts the inbound message id from context.
func MessageIDFrom(ctx context.Context) string {
	return stringFrom(ctx, ctxMessageID)
}

// WebhookTypeFrom extracts the webhook kind from context.
func WebhookTypeFrom(ctx context.Context) string {
	return stringFrom(ctx, ctxWebhookType)
}

// WithHandler stores handler identifier in context for downstream logs.
func WithHandler(ctx context.Context, handler string) context.Context {
	return withString(ctx, ctxHandler, handler)
}

// HandlerFrom returns handler identifier from context if present.
func HandlerFrom(ctx context.Context) string {
	return stringFrom(ctx, ctxHandler)
}

func withString(ctx context.Context, key contextKey, val string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if val == "" {
		return ctx
	}
	return context.WithValue(ctx, key, val)
}

func stringFrom(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(key).(string); ok {
		return s
	}
	return ""
}

// Sanitize trims non-printable runes from s to keep logs clean.
// Control and format characters are dropped except for tab and newline.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	b := strings.Builder{}
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeLimit applies Sanitize and limits the output length in runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(Sanitize(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max])
}

// CompactRID shortens a UUID request id to its first group for readability.
// Ids that are not UUID shaped are returned unchanged.
func CompactRID(rid string) string {
	rid = strings.TrimSpace(rid)
	if len(rid) != 36 || strings.Count(rid, "-") != 4 {
		return rid
	}
	head, _, _ := strings.Cut(rid, "-")
	return strings.ToLower(head)
}

// MaskChatID hides the middle digits of a WhatsApp chat id such as
// "972501234567@c.us" so phone numbers do not land in logs verbatim.
func MaskChatID(chatID string) string {
	number, suffix, found := strings.Cut(chatID, "@")
	if len(number) <= 6 {
		return chatID
	}
	masked := number[:3] + strings.Repeat("*", len(number)-6) + number[len(number)-3:]
	if found {
		return masked + "@" + suffix
	}
	return masked
}
