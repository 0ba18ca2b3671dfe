package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/netutil"
)

// DefaultAPIURL is the public Green API host.
const DefaultAPIURL = "https://api.green-api.com"

// GreenAPI sends messages through one Green API instance.
type GreenAPI struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

var _ Sender = (*GreenAPI)(nil)

// NewGreenAPI builds a sender for instanceID. An empty apiURL selects DefaultAPIURL
// and a nil client selects a netutil client.
func NewGreenAPI(apiURL, instanceID, token string, client *http.Client) *GreenAPI {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIURL
	}
	if client == nil {
		client = netutil.NewHTTPClient(netutil.ClientOptions{Component: "wa.sender"})
	}
	return &GreenAPI{
		baseURL: strings.TrimRight(apiURL, "/") + "/waInstance" + instanceID,
		token:   token,
		http:    client,
		log:     logger.Component("wa.sender"),
	}
}

// SendText posts a plain text message.
func (g *GreenAPI) SendText(ctx context.Context, chatID, text string) (Receipt, error) {
	body := map[string]string{"chatId": chatID, "message": text}
	return g.post(ctx, "sendMessage", chatID, body, slog.Int("chars", len([]rune(text))))
}

// SendButtons posts an interactive buttons message.
func (g *GreenAPI) SendButtons(ctx context.Context, p ButtonsPayload) (Receipt, error) {
	return g.post(ctx, "sendInteractiveButtonsReply", p.ChatID, p, slog.Int("count", len(p.Buttons)))
}

func (g *GreenAPI) post(ctx context.Context, method, chatID string, payload any, extra slog.Attr) (Receipt, error) {
	start := time.Now()
	data, err := json.Marshal(payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("green api %s: encode: %w", method, err)
	}
	url := g.baseURL + "/" + method + "/" + g.token
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return Receipt{}, fmt.Errorf("green api %s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		apiErr := &APIError{Op: method, Err: err}
		g.logResult(ctx, method, chatID, start, apiErr, extra)
		return Receipt{}, apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		apiErr := &APIError{Op: method, StatusCode: resp.StatusCode}
		g.logResult(ctx, method, chatID, start, apiErr, extra)
		return Receipt{}, apiErr
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		apiErr := &APIError{Op: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode receipt: %w", err)}
		g.logResult(ctx, method, chatID, start, apiErr, extra)
		return Receipt{}, apiErr
	}
	g.logResult(ctx, method, chatID, start, nil, extra, slog.String("id_message", receipt.IDMessage))
	return receipt, nil
}

func (g *GreenAPI) logResult(ctx context.Context, method, chatID string, start time.Time, err *APIError, extra ...slog.Attr) {
	level := slog.LevelInfo
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("op", method),
		slog.String("chat_id", logger.MaskChatID(chatID)),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		level = slog.LevelError
		attrs[0] = slog.String("status", "fail")
		attrs = append(attrs,
			slog.String("err", err.Error()),
			slog.String("err_code", logger.ErrCode(err)),
		)
		if err.StatusCode != 0 {
			attrs = append(attrs, slog.Int("http_code", err.StatusCode))
		}
	}
	logger.LogEvent(ctx, g.log, level, "wa.send", append(attrs, extra...)...)
}
