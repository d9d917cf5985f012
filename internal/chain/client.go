package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/config"
)

const maxResponseSize = 1 << 20

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrRequestRejected is a client error answer, e.g. a view function that aborted.
	// Asking again returns the same answer.
	ErrRequestRejected = errors.New("request rejected by chain")
)

type viewRequest struct {
	TypeArgs []string `json:"type_args"`
	Args     []string `json:"args"`
}

type viewResponse struct {
	Data json.RawMessage `json:"data"`
}

// Client queries Move view functions through the chain REST API.
type Client struct {
	logger *slog.Logger
	http   *retryablehttp.Client

	baseURL       string
	moduleAddress string
}

func NewClient(logger *slog.Logger, conf config.Chain) *Client {
	log := logger.With("component", "chain")

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = conf.RetryMax
	httpClient.HTTPClient.Timeout = conf.QueryTimeout
	httpClient.Logger = log
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		logger: log,
		http:   httpClient,

		baseURL:       strings.TrimRight(conf.RESTURL, "/"),
		moduleAddress: conf.ModuleAddress,
	}
}

// View - calls a view function of the configured module address and returns its data field.
// Data rendered as a JSON string is unwrapped; an empty result comes back as nil.
func (that *Client) View(ctx context.Context, module, function string, typeArgs, args []string) (json.RawMessage, error) {
	log := that.logger.With("method", "View", "function", function)

	if typeArgs == nil {
		typeArgs = []string{}
	}

	if args == nil {
		args = []string{}
	}

	body, err := json.Marshal(viewRequest{TypeArgs: typeArgs, Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal view request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/initia/move/v1/accounts/%s/modules/%s/view_functions/%s",
		that.baseURL, url.PathEscape(that.moduleAddress), url.PathEscape(module), url.PathEscape(function))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create view request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call view function %s: %w", function, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read view response: %w", err)
	}

	if isRejection(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w: %d %s", ErrRequestRejected, ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result viewResponse
	if err = json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view response: %w", err)
	}

	log.Debug("view function answered", "data", string(result.Data))

	return unwrapData(result.Data), nil
}

func isRejection(status int) bool {
	if status == http.StatusRequestTimeout || status == http.StatusTooManyRequests {
		return false
	}

	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

func unwrapData(data json.RawMessage) json.RawMessage {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var wrapped string
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return data
	}

	if wrapped == "" {
		return nil
	}

	return json.RawMessage(wrapped)
}
