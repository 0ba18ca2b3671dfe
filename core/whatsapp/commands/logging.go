package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/whatsapp/state"
)

func logSummary(ctx context.Context, handlerName string, start time.Time, reply Reply, extras ...slog.Attr) {
	kind := "text"
	if _, ok := reply.(ButtonsReply); ok {
		kind = "buttons"
	}
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("handler", handlerName),
		slog.String("reply", kind),
		slog.Duration("duration", logger.Took(start)),
	}
	attrs = append(attrs, extras...)
	logger.Info(ctx, "wa", "router.handled", attrs...)
}

func stepAttr(s *state.Session) slog.Attr {
	return slog.String("flow", string(s.Flow))
}
