// Package gateway is the entry point for inbound webhooks: it validates the
// event, filters by sender and forwards the router reply to WhatsApp.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/whatsapp/commands"
	"github.com/m3rciful/shopbot/core/whatsapp/format"
	"github.com/m3rciful/shopbot/core/whatsapp/sender"
	"github.com/m3rciful/shopbot/core/whatsapp/webhook"
)

// Action explains what happened to an event.
type Action string

const (
	ActionCommandProcessed    Action = "command_processed"
	ActionUnregisteredReplied Action = "unregistered_replied"
	ActionIgnoredWebhookType  Action = "ignored_webhook_type"
	ActionIgnoredUnsupported  Action = "ignored_unsupported"
	ActionIgnoredWrongNumber  Action = "ignored_wrong_number"
)

// Result is the outcome of one event.
type Result struct {
	Handled bool   `json:"handled"`
	Action  Action `json:"action"`
}

// Processor produces a reply for inbound text. *commands.Router implements it.
type Processor interface {
	Process(ctx context.Context, chatID, text string) commands.Reply
}

// ChatIDForPhone returns the personal chat id of a phone number.
func ChatIDForPhone(phone string) string {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	return phone + "@c.us"
}

// Handler processes webhook events for one registered number.
type Handler struct {
	router     Processor
	sender     sender.Sender
	registered string
	courtesy   bool
}

// Option customises a Handler.
type Option func(*Handler)

// WithCourtesyReply toggles the reply sent to unregistered senders.
func WithCourtesyReply(on bool) Option {
	return func(h *Handler) { h.courtesy = on }
}

// NewHandler serves the chat of phone. Courtesy replies are on by default.
func NewHandler(router Processor, out sender.Sender, phone string, opts ...Option) *Handler {
	h := &Handler{
		router:     router,
		sender:     out,
		registered: ChatIDForPhone(phone),
		courtesy:   true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisteredChatID reports the chat id this handler serves.
func (h *Handler) RegisteredChatID() string { return h.registered }

// Handle validates raw and processes it. Malformed payloads return a
// *webhook.ValidationError; transport failures are returned wrapped.
func (h *Handler) Handle(ctx context.Context, raw []byte) (Result, error) {
	ev, err := webhook.Parse(raw)
	if err != nil {
		logger.Warn(ctx, "wa", "webhook.invalid",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.String("err_code", logger.ErrCode(err)),
		)
		return Result{}, err
	}
	return h.HandleEvent(ctx, ev)
}

// HandleEvent processes an already validated event.
func (h *Handler) HandleEvent(ctx context.Context, ev webhook.Event) (Result, error) {
	start := time.Now()
	ctx = logger.WithMessageMeta(ctx, ev.TypeWebhook, ev.ChatID(), ev.IDMessage)

	res, err := h.dispatch(ctx, ev)
	logResult(ctx, ev, res, err, start)
	return res, err
}

func (h *Handler) dispatch(ctx context.Context, ev webhook.Event) (Result, error) {
	if ev.TypeWebhook != webhook.TypeIncomingMessage {
		return Result{Handled: false, Action: ActionIgnoredWebhookType}, nil
	}

	chatID := ev.ChatID()
	if chatID != h.registered {
		if !h.courtesy {
			return Result{Handled: false, Action: ActionIgnoredWrongNumber}, nil
		}
		if _, err := h.sender.SendText(ctx, chatID, format.Courtesy()); err != nil {
			return Result{}, fmt.Errorf("gateway: send courtesy reply: %w", err)
		}
		return Result{Handled: true, Action: ActionUnregisteredReplied}, nil
	}

	content, ok := webhook.ExtractContent(ev)
	if !ok {
		return Result{Handled: false, Action: ActionIgnoredUnsupported}, nil
	}

	reply := h.router.Process(ctx, chatID, content.Value)
	if err := h.send(ctx, chatID, reply); err != nil {
		return Result{}, fmt.Errorf("gateway: send reply: %w", err)
	}
	return Result{Handled: true, Action: ActionCommandProcessed}, nil
}

func (h *Handler) send(ctx context.Context, chatID string, reply commands.Reply) error {
	var err error
	switch r := reply.(type) {
	case commands.TextReply:
		_, err = h.sender.SendText(ctx, chatID, r.Text)
	case commands.ButtonsReply:
		buttons := make([]sender.Button, 0, len(r.Buttons))
		for _, b := range r.Buttons {
			buttons = append(buttons, sender.Button{ID: b.ID, Label: b.Label})
		}
		_, err = h.sender.SendButtons(ctx, sender.ButtonsPayload{
			ChatID:  chatID,
			Body:    r.Body,
			Buttons: buttons,
			Header:  r.Header,
			Footer:  r.Footer,
		})
	default:
		err = fmt.Errorf("unsupported reply %T", reply)
	}
	return err
}

func logResult(ctx context.Context, ev webhook.Event, res Result, err error, start time.Time) {
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("type_message", ev.TypeMessage()),
		slog.String("action", string(res.Action)),
		slog.Bool("handled", res.Handled),
		slog.Duration("duration", logger.Took(start)),
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", logger.ErrCode(err)),
		)
	} else if !res.Handled {
		attrs[0] = slog.String("status", "ignored")
	}
	logger.Event(ctx, "wa", level, "webhook.handled", attrs...)
}
