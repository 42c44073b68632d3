package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stride-app/stride/internal/models"
)

// Client is the HTTP implementation of Gateway. Each operation is a
// JSON POST to /rpc/<op> on the daemon.
type Client struct {
	baseURL string
	httpc   *http.Client
}

var _ Gateway = (*Client)(nil)

// NewClient returns a client for a daemon at baseURL, e.g.
// "http://127.0.0.1:7433".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

type appCommandRequest struct {
	Command string `json:"command"`
}

type appCommandResponse struct {
	Result string `json:"result"`
}

type cursorActionRequest struct {
	CursorAction models.CursorAction `json:"cursorAction"`
}

type setActiveActivityRequest struct {
	NewActiveActivity models.ActiveActivity `json:"newActiveActivity"`
}

func (c *Client) Load(ctx context.Context) error {
	_, err := c.post(ctx, "load", nil)
	return err
}

func (c *Client) Fetch(ctx context.Context) (*models.FrontendState, error) {
	body, err := c.post(ctx, "fetch", nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	var state models.FrontendState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("decoding fetch response: %w", err)
	}
	return &state, nil
}

func (c *Client) AppCommand(ctx context.Context, command string) (string, error) {
	body, err := c.post(ctx, "app_command", appCommandRequest{Command: command})
	if err != nil {
		return "", err
	}
	if body == nil {
		return "", nil
	}
	var resp appCommandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding app_command response: %w", err)
	}
	return resp.Result, nil
}

func (c *Client) CursorAction(ctx context.Context, action models.CursorAction) error {
	_, err := c.post(ctx, "cursor_action", cursorActionRequest{CursorAction: action})
	return err
}

func (c *Client) SetActiveActivity(ctx context.Context, activity models.ActiveActivity) error {
	_, err := c.post(ctx, "set_active_activity", setActiveActivityRequest{NewActiveActivity: activity})
	return err
}

// post issues one RPC. A nil payload sends an empty JSON object. A
// 204 response yields (nil, nil); any non-2xx status becomes an error
// carrying the response body verbatim.
func (c *Client) post(ctx context.Context, op string, payload any) ([]byte, error) {
	if payload == nil {
		payload = struct{}{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/"+op, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", op, err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, errors.New(msg)
	}
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}
