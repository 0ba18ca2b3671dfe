// Package commands turns inbound text into replies: the command router,
// the list flow and the add-product wizard.
package commands

import (
	"context"
	"time"

	"github.com/m3rciful/shopbot/core/catalog"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/whatsapp/format"
	"github.com/m3rciful/shopbot/core/whatsapp/state"
)

// Router dispatches inbound text. A live session always takes precedence
// over command aliases.
type Router struct {
	store    state.Store
	registry *Registry
	list     *ListFlow
	add      *AddFlow
}

// RouterOption customises a Router.
type RouterOption func(*Router)

// WithRegistry replaces the default alias registry.
func WithRegistry(reg *Registry) RouterOption {
	return func(r *Router) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// NewRouter wires the router to a session store and catalog client.
func NewRouter(store state.Store, client catalog.Client, opts ...RouterOption) *Router {
	r := &Router{
		store:    store,
		registry: DefaultRegistry(),
		list:     NewListFlow(client),
		add:      NewAddFlow(store, client),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process handles one inbound message for chatID. It holds the chat lock for
// the whole read-modify-write so concurrent messages of one chat cannot interleave.
func (r *Router) Process(ctx context.Context, chatID, text string) Reply {
	start := time.Now()
	unlock := r.store.Lock(chatID)
	defer unlock()

	if s, ok := r.store.Get(chatID); ok {
		ctx = logger.WithHandler(ctx, "add.step")
		reply := TextReply{Text: r.add.HandleStep(ctx, chatID, text, s)}
		logSummary(ctx, "add.step", start, reply, stepAttr(s))
		return reply
	}

	cmd, ok := r.registry.Lookup(text)
	if !ok {
		ctx = logger.WithHandler(ctx, "unknown")
		reply := menuReply(format.UnknownCommand())
		logSummary(ctx, "unknown", start, reply)
		return reply
	}

	name := "command." + string(cmd)
	ctx = logger.WithHandler(ctx, name)
	var reply Reply
	switch cmd {
	case CommandList:
		reply = TextReply{Text: r.list.Execute(ctx)}
	case CommandAdd:
		reply = TextReply{Text: r.add.Start(ctx, chatID)}
	default:
		reply = menuReply(format.Menu())
	}
	logSummary(ctx, name, start, reply)
	return reply
}
