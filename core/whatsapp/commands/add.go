package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/shopbot/core/catalog"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/whatsapp/format"
	"github.com/m3rciful/shopbot/core/whatsapp/state"
)

// AddFlow drives the add-product wizard: name, then price, then stock.
type AddFlow struct {
	store   state.Store
	catalog catalog.Client
}

// NewAddFlow wires the wizard to its session store and catalog.
func NewAddFlow(store state.Store, client catalog.Client) *AddFlow {
	return &AddFlow{store: store, catalog: client}
}

// Start opens a new session at the name step.
func (f *AddFlow) Start(ctx context.Context, chatID string) string {
	f.store.Set(chatID, f.store.CreateSession(chatID))
	logger.Info(ctx, "wa", "add.start", slog.String("status", "ok"), slog.String("step", string(state.StepName)))
	return format.AskName()
}

// HandleStep applies input to the live session s and returns the reply text.
func (f *AddFlow) HandleStep(ctx context.Context, chatID, input string, s *state.Session) string {
	out := Transition(s.Step, s.Data, input)

	switch out.Effect {
	case EffectSave:
		s.Step = out.Next
		s.Data = out.Data
		f.store.Set(chatID, s)
	case EffectDelete:
		f.store.Delete(chatID)
	case EffectCreate:
		f.store.Delete(chatID)
		return f.create(ctx, out.Data)
	}

	logger.Debug(ctx, "wa", "add.step",
		slog.String("status", "ok"),
		slog.String("step", string(s.Step)),
		slog.String("outcome", stepOutcome(out)),
	)
	return stepReply(out.Reply)
}

func (f *AddFlow) create(ctx context.Context, data state.Data) string {
	in := catalog.CreateProductInput{
		Name:          format.DerefString(data.Name, ""),
		RegularPrice:  format.DerefString(data.Price, ""),
		StockQuantity: format.DerefInt(data.Stock, 0),
	}
	created, err := f.catalog.CreateProduct(ctx, in)
	if err != nil {
		logger.Warn(ctx, "wa", "add.create",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.String("err_code", logger.ErrCode(err)),
		)
		return format.ProductCreateError(describe(err))
	}
	logger.Info(ctx, "wa", "add.create",
		slog.String("status", "ok"),
		slog.Int64("product_id", created.ID),
	)
	return format.ProductCreated(created)
}

func stepReply(kind ReplyKind) string {
	switch kind {
	case ReplyAskPrice:
		return format.AskPrice()
	case ReplyAskStock:
		return format.AskStock()
	case ReplyInvalidPrice:
		return format.InvalidPrice()
	case ReplyInvalidStock:
		return format.InvalidStock()
	case ReplyCancelled:
		return format.Cancelled()
	default:
		return format.AskName()
	}
}

func stepOutcome(out Outcome) string {
	switch out.Effect {
	case EffectSave:
		return "ok"
	case EffectDelete:
		return "cancelled"
	default:
		return "fail"
	}
}

// describe returns the user-facing description of a catalog failure.
func describe(err error) string {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
