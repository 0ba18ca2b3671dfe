package commands

import (
	"context"
	"log/slog"

	"github.com/m3rciful/shopbot/core/catalog"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/whatsapp/format"
)

// ListFlow renders the current catalog.
type ListFlow struct {
	catalog catalog.Client
}

// NewListFlow returns a list flow reading from client.
func NewListFlow(client catalog.Client) *ListFlow {
	return &ListFlow{catalog: client}
}

// Execute fetches the products and always returns a message, also on failure.
func (f *ListFlow) Execute(ctx context.Context) string {
	products, err := f.catalog.ListProducts(ctx)
	if err != nil {
		logger.Warn(ctx, "wa", "command.list",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.String("err_code", logger.ErrCode(err)),
		)
		return format.ListError(describe(err))
	}
	logger.Debug(ctx, "wa", "command.list",
		slog.String("status", "ok"),
		slog.Int("count", len(products)),
	)
	return format.ProductList(products)
}
