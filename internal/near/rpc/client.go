// Package rpc is a minimal NEAR JSON-RPC client covering the view queries used for reports.
package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/tidwall/gjson"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records metrics for RPC calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// HTTPDoer sends a prepared HTTP request.
	HTTPDoer interface {
		Do(req *http.Request) (*http.Response, error)
	}
)

// ErrTransient marks failures worth retrying: network errors, overloaded or lagging nodes.
var ErrTransient = errors.New("transient rpc failure")

const maxResponseBytes = 16 << 20

// Client talks to a single NEAR archival node.
type Client struct {
	endpoint string
	http     HTTPDoer
	metrics  Metrics
	nextID   atomic.Uint64
}

// NewClient constructs an instrumented JSON-RPC client.
func NewClient(endpoint string, httpClient HTTPDoer, metrics Metrics) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("rpc endpoint is required")
	}
	if httpClient == nil {
		return nil, errors.New("rpc http client is required")
	}
	if metrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	return &Client{endpoint: endpoint, http: httpClient, metrics: metrics}, nil
}

// ViewAccount returns the balance of account at the given block height.
func (c *Client) ViewAccount(ctx context.Context, account model.AccountID, height uint64) (balance model.Balance, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("view_account", err, started)
	}()

	result, err := c.query(ctx, map[string]any{
		"request_type": "view_account",
		"block_id":     height,
		"account_id":   string(account),
	})
	if err != nil {
		return model.Balance{}, fmt.Errorf("view account %s at %d: %w", account, height, err)
	}

	balance, err = model.NewBalance(result.Get("amount").String(), result.Get("locked").String())
	if err != nil {
		return model.Balance{}, fmt.Errorf("view account %s at %d: %w", account, height, err)
	}
	return balance, nil
}

// CallFunction runs a view method of contract against the latest final block.
func (c *Client) CallFunction(ctx context.Context, contract model.AccountID, method string, args []byte) (out []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("call_function", err, started)
	}()

	result, err := c.query(ctx, map[string]any{
		"request_type": "call_function",
		"finality":     "final",
		"account_id":   string(contract),
		"method_name":  method,
		"args_base64":  base64.StdEncoding.EncodeToString(args),
	})
	if err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", contract, method, err)
	}

	raw := result.Get("result")
	if !raw.IsArray() {
		return nil, fmt.Errorf("call %s.%s: missing result bytes", contract, method)
	}
	values := raw.Array()
	out = make([]byte, 0, len(values))
	for _, v := range values {
		n := v.Int()
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("call %s.%s: invalid result byte %d", contract, method, n)
		}
		out = append(out, byte(n))
	}
	return out, nil
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

func (c *Client) query(ctx context.Context, params any) (gjson.Result, error) {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      strconv.FormatUint(c.nextID.Add(1), 10),
		Method:  "query",
		Params:  params,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, ctxErr
		}
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrTransient, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, ctxErr
		}
		return gjson.Result{}, fmt.Errorf("%w: read response: %w", ErrTransient, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		if rpcErr := classify(payload); rpcErr != nil && !errors.Is(rpcErr, ErrTransient) {
			return gjson.Result{}, rpcErr
		}
		return gjson.Result{}, fmt.Errorf("%w: http %d", ErrTransient, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		if rpcErr := classify(payload); rpcErr != nil {
			return gjson.Result{}, rpcErr
		}
		return gjson.Result{}, fmt.Errorf("http %d", resp.StatusCode)
	}

	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, errors.New("malformed response")
	}
	if rpcErr := classify(payload); rpcErr != nil {
		return gjson.Result{}, rpcErr
	}

	result := gjson.GetBytes(payload, "result")
	if !result.Exists() {
		return gjson.Result{}, errors.New("response has no result")
	}
	return result, nil
}

// classify maps a node error payload onto domain errors, returning nil when there is none.
func classify(payload []byte) error {
	if !gjson.ValidBytes(payload) {
		return nil
	}

	if e := gjson.GetBytes(payload, "error"); e.Exists() {
		cause := e.Get("cause.name").String()
		if cause == "" {
			cause = e.Get("name").String()
		}
		message := e.Get("data").String()
		if message == "" {
			message = e.Get("message").String()
		}

		switch cause {
		case "UNKNOWN_ACCOUNT":
			return fmt.Errorf("%w: %s", model.ErrAccountNotFound, message)
		case "UNKNOWN_BLOCK", "GARBAGE_COLLECTED_BLOCK":
			return fmt.Errorf("%w: %s", model.ErrBlockNotFound, message)
		case "TIMEOUT_ERROR", "INTERNAL_ERROR", "NO_SYNCED_BLOCKS", "NOT_SYNCED_YET":
			return fmt.Errorf("%w: %s: %s", ErrTransient, strings.ToLower(cause), message)
		default:
			return fmt.Errorf("rpc error %s: %s", cause, message)
		}
	}

	// Older nodes report query failures inside the result.
	if legacy := gjson.GetBytes(payload, "result.error"); legacy.Exists() {
		message := legacy.String()
		switch {
		case strings.Contains(message, "does not exist while viewing"):
			return fmt.Errorf("%w: %s", model.ErrAccountNotFound, message)
		case strings.Contains(message, "UnknownBlock"):
			return fmt.Errorf("%w: %s", model.ErrBlockNotFound, message)
		default:
			return fmt.Errorf("rpc error: %s", message)
		}
	}

	return nil
}
