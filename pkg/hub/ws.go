package hub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// ErrAuthInvalid is returned by Handshake when the hub rejects the token.
var ErrAuthInvalid = errors.New("hub: authentication rejected")

// wsMessage is the subset of the hub's WebSocket message envelope used by the
// auth phase.
type wsMessage struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token,omitempty"`
	HAVersion   string `json:"ha_version,omitempty"`
	Message     string `json:"message,omitempty"`
}

// HandshakeResult describes a hub that accepted the configured token.
type HandshakeResult struct {
	Version string
}

// wsURL converts the BaseURL to a WebSocket URL and appends path.
// https becomes wss, http becomes ws.
func (c *Client) wsURL(path string) string {
	u := c.BaseURL + path

	if strings.HasPrefix(u, "https://") {
		return "wss://" + u[len("https://"):]
	}

	if strings.HasPrefix(u, "http://") {
		return "ws://" + u[len("http://"):]
	}

	return u
}

// Handshake connects to the hub's WebSocket API and performs the auth phase
// with the client's token. It closes the connection before returning.
func (c *Client) Handshake(ctx context.Context) (HandshakeResult, error) {
	conn, _, err := websocket.Dial(ctx, c.wsURL("/api/websocket"), &websocket.DialOptions{
		HTTPClient: c.httpClient(),
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + c.Token}},
	})
	if err != nil {
		return HandshakeResult{}, fmt.Errorf("hub: dial websocket: %w", err)
	}
	defer func() { _ = conn.CloseNow() }()

	var hello wsMessage
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		return HandshakeResult{}, fmt.Errorf("hub: read auth_required: %w", err)
	}

	if hello.Type != "auth_required" {
		return HandshakeResult{}, fmt.Errorf("hub: unexpected message %q, want auth_required", hello.Type)
	}

	if err := wsjson.Write(ctx, conn, wsMessage{Type: "auth", AccessToken: c.Token}); err != nil {
		return HandshakeResult{}, fmt.Errorf("hub: send auth: %w", err)
	}

	var reply wsMessage
	if err := wsjson.Read(ctx, conn, &reply); err != nil {
		return HandshakeResult{}, fmt.Errorf("hub: read auth result: %w", err)
	}

	switch reply.Type {
	case "auth_ok":
		version := reply.HAVersion
		if version == "" {
			version = hello.HAVersion
		}

		return HandshakeResult{Version: version}, nil
	case "auth_invalid":
		return HandshakeResult{}, fmt.Errorf("%w: %s", ErrAuthInvalid, reply.Message)
	default:
		return HandshakeResult{}, fmt.Errorf("hub: unexpected message %q, want auth_ok", reply.Type)
	}
}
