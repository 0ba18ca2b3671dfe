package commands

import (
	"math"
	"strconv"
	"strings"

	"github.com/m3rciful/shopbot/core/whatsapp/state"
)

// Effect is the side effect a transition asks the caller to perform.
type Effect int

const (
	// EffectNone leaves the stored session untouched.
	EffectNone Effect = iota
	// EffectSave stores the session at Outcome.Next with Outcome.Data.
	EffectSave
	// EffectDelete drops the session.
	EffectDelete
	// EffectCreate drops the session and creates the product from Outcome.Data.
	EffectCreate
)

// ReplyKind selects the message sent back after a transition.
type ReplyKind int

const (
	ReplyAskName ReplyKind = iota
	ReplyAskPrice
	ReplyAskStock
	ReplyInvalidPrice
	ReplyInvalidStock
	ReplyCancelled
	// ReplyCreateResult depends on the outcome of the create call.
	ReplyCreateResult
)

// Outcome is the result of one wizard step.
type Outcome struct {
	Next   state.Step
	Data   state.Data
	Reply  ReplyKind
	Effect Effect
}

// Transition computes the next wizard state for input. It performs no I/O.
func Transition(step state.Step, data state.Data, input string) Outcome {
	trimmed := strings.TrimSpace(input)
	if isCancel(trimmed) {
		return Outcome{Next: step, Data: data, Reply: ReplyCancelled, Effect: EffectDelete}
	}

	switch step {
	case state.StepName:
		if trimmed == "" {
			return Outcome{Next: step, Data: data, Reply: ReplyAskName}
		}
		data.Name = &trimmed
		return Outcome{Next: state.StepPrice, Data: data, Reply: ReplyAskPrice, Effect: EffectSave}

	case state.StepPrice:
		price, ok := parsePrice(trimmed)
		if !ok {
			return Outcome{Next: step, Data: data, Reply: ReplyInvalidPrice}
		}
		data.Price = &price
		return Outcome{Next: state.StepStock, Data: data, Reply: ReplyAskStock, Effect: EffectSave}

	case state.StepStock:
		stock, ok := parseStock(trimmed)
		if !ok {
			return Outcome{Next: step, Data: data, Reply: ReplyInvalidStock}
		}
		data.Stock = &stock
		return Outcome{Next: step, Data: data, Reply: ReplyCreateResult, Effect: EffectCreate}
	}

	return Outcome{Next: step, Data: data, Reply: ReplyCancelled, Effect: EffectDelete}
}

func isCancel(s string) bool {
	switch strings.ToLower(s) {
	case "cancel", "stop":
		return true
	}
	return false
}

// parsePrice accepts a positive finite decimal and renders it with two decimals.
func parsePrice(s string) (string, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', 2, 64), true
}

// parseStock accepts a non-negative whole number.
func parseStock(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
