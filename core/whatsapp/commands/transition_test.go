package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/core/whatsapp/state"
)

func strPtr(s string) *string { return &s }

func TestTransitionCancelFromEveryStep(t *testing.T) {
	for _, step := range []state.Step{state.StepName, state.StepPrice, state.StepStock} {
		for _, input := range []string{"cancel", "STOP", "  Cancel  "} {
			out := Transition(step, state.Data{}, input)
			assert.Equal(t, EffectDelete, out.Effect, "%s/%q", step, input)
			assert.Equal(t, ReplyCancelled, out.Reply)
		}
	}
}

func TestTransitionName(t *testing.T) {
	out := Transition(state.StepName, state.Data{}, "   ")
	assert.Equal(t, EffectNone, out.Effect)
	assert.Equal(t, ReplyAskName, out.Reply)
	assert.Equal(t, state.StepName, out.Next)
	assert.Nil(t, out.Data.Name)

	out = Transition(state.StepName, state.Data{}, "  Widget ")
	assert.Equal(t, EffectSave, out.Effect)
	assert.Equal(t, state.StepPrice, out.Next)
	require.NotNil(t, out.Data.Name)
	assert.Equal(t, "Widget", *out.Data.Name)
}

func TestTransitionPrice(t *testing.T) {
	data := state.Data{Name: strPtr("Widget")}
	for _, bad := range []string{"abc", "-5", "0", "", "NaN", "Inf", "12abc"} {
		out := Transition(state.StepPrice, data, bad)
		assert.Equal(t, EffectNone, out.Effect, "%q", bad)
		assert.Equal(t, ReplyInvalidPrice, out.Reply, "%q", bad)
		assert.Equal(t, state.StepPrice, out.Next)
		assert.Nil(t, out.Data.Price)
	}

	cases := map[string]string{"19.99": "19.99", "20": "20.00", "29.9": "29.90", " 7.5 ": "7.50"}
	for in, want := range cases {
		out := Transition(state.StepPrice, data, in)
		assert.Equal(t, EffectSave, out.Effect, "%q", in)
		assert.Equal(t, state.StepStock, out.Next)
		require.NotNil(t, out.Data.Price)
		assert.Equal(t, want, *out.Data.Price)
		assert.Equal(t, "Widget", *out.Data.Name)
	}
}

func TestTransitionStock(t *testing.T) {
	data := state.Data{Name: strPtr("Widget"), Price: strPtr("29.99")}
	for _, bad := range []string{"-1", "3.5", "abc", ""} {
		out := Transition(state.StepStock, data, bad)
		assert.Equal(t, EffectNone, out.Effect, "%q", bad)
		assert.Equal(t, ReplyInvalidStock, out.Reply, "%q", bad)
		assert.Equal(t, state.StepStock, out.Next)
	}

	out := Transition(state.StepStock, data, "0")
	assert.Equal(t, EffectCreate, out.Effect)
	require.NotNil(t, out.Data.Stock)
	assert.Equal(t, 0, *out.Data.Stock)
}

func TestTransitionUnknownStepCancels(t *testing.T) {
	out := Transition(state.Step("bogus"), state.Data{}, "hello")
	assert.Equal(t, EffectDelete, out.Effect)
	assert.Equal(t, ReplyCancelled, out.Reply)
}
