// Package remote is the HTTP client of the remote execution system.
//
// Every command is a JSON request against a path below the configured base
// URL. Any HTTP answer is returned as a ports.RemoteResponse, whatever its
// status; an error is returned only when no answer arrived. Deadlines come
// from the caller's context.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/metrics"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// Command names, also used as metric labels.
const (
	CommandGetOrder    = "GetOrder"
	CommandCreateOrder = "CreateOrder"
	CommandStartOrder  = "StartOrder"
	CommandStopOrder   = "StopOrder"
	CommandDeleteOrder = "DeleteOrder"
	CommandCreateSet   = "CreateSet"
	CommandPing        = "Ping"
)

const (
	pathGetOrder    = "ProductionOrder/GetOrder/"
	pathCreateOrder = "ProductionOrder/CreateOrder"
	pathStartOrder  = "ProductionOrder/StartOrder"
	pathStopOrder   = "ProductionOrder/StopOrder"
	pathDeleteOrder = "ProductionOrder/DeleteOrder"
	pathCreateSet   = "Reels/CreateSet"
)

// Client implements ports.RemoteExecutionClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a client for baseURL, e.g. "http://host:88/ZncWebApi".
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With("component", "remote_client"),
	}
}

// GetOrder probes for an order: 2xx means it exists, 404 means it does not.
func (c *Client) GetOrder(ctx context.Context, productionOrder int) (ports.RemoteResponse, error) {
	return c.send(ctx, CommandGetOrder, http.MethodGet, pathGetOrder+strconv.Itoa(productionOrder), nil)
}

func (c *Client) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (ports.RemoteResponse, error) {
	return c.send(ctx, CommandCreateOrder, http.MethodPost, pathCreateOrder, newCreateOrderPayload(req))
}

func (c *Client) StartOrder(ctx context.Context, cmd ports.OrderCommand) (ports.RemoteResponse, error) {
	return c.send(ctx, CommandStartOrder, http.MethodPost, pathStartOrder,
		newOrderCommandPayload(ports.MessageTypeStartOrder, cmd))
}

func (c *Client) StopOrder(ctx context.Context, cmd ports.OrderCommand) (ports.RemoteResponse, error) {
	return c.send(ctx, CommandStopOrder, http.MethodPost, pathStopOrder,
		newOrderCommandPayload(ports.MessageTypeStopOrder, cmd))
}

func (c *Client) DeleteOrder(ctx context.Context, cmd ports.OrderCommand) (ports.RemoteResponse, error) {
	return c.send(ctx, CommandDeleteOrder, http.MethodDelete, pathDeleteOrder,
		newOrderCommandPayload(ports.MessageTypeDeleteOrder, cmd))
}

func (c *Client) CreateSet(ctx context.Context, req ports.CreateSetRequest) (ports.RemoteResponse, error) {
	return c.send(ctx, CommandCreateSet, http.MethodPost, pathCreateSet, newCreateSetPayload(req))
}

// Ping succeeds when the base URL answers with any HTTP status.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.send(ctx, CommandPing, http.MethodGet, "", nil)
	return err
}

func (c *Client) send(ctx context.Context, command, method, path string, payload any) (ports.RemoteResponse, error) {
	url := c.baseURL
	if path != "" {
		url += "/" + path
	}

	var encoded []byte
	if payload != nil {
		var err error
		if encoded, err = json.Marshal(payload); err != nil {
			return ports.RemoteResponse{}, fmt.Errorf("encode %s request: %w", command, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(encoded))
	if err != nil {
		return ports.RemoteResponse{}, fmt.Errorf("build %s request: %w", command, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	curl := RenderCurl(method, url, encoded)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveRemoteCall(command, metrics.OutcomeTransport, time.Since(started))
		c.logger.WarnContext(ctx, "remote request failed", "command", command, "url", url, "error", err)
		return ports.RemoteResponse{Curl: curl}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.ObserveRemoteCall(command, metrics.OutcomeTransport, time.Since(started))
		return ports.RemoteResponse{Curl: curl}, fmt.Errorf("read %s response: %w", command, err)
	}

	out := ports.RemoteResponse{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
		Curl:       curl,
	}
	if result, messages, ok := ParseResult(out.Body); ok {
		out.Parsed = true
		out.Result = result
		out.Messages = messages
	}

	metrics.ObserveRemoteCall(command, outcomeOf(out), time.Since(started))
	c.logger.DebugContext(ctx, "remote request completed",
		"command", command, "status", out.StatusCode, "result", out.Result, "elapsed", time.Since(started))

	return out, nil
}

func outcomeOf(resp ports.RemoteResponse) string {
	switch {
	case resp.IsNotFound():
		return metrics.OutcomeNotFound
	case resp.Accepted():
		return metrics.OutcomeOK
	default:
		return metrics.OutcomeRejected
	}
}

// RenderCurl renders a request as a curl command line.
func RenderCurl(method, url string, body []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s '%s'", method, url)
	if len(body) > 0 {
		b.WriteString(" -H 'Content-Type: application/json'")
		fmt.Fprintf(&b, " -d '%s'", strings.ReplaceAll(string(body), "'", `'\''`))
	}
	return b.String()
}
