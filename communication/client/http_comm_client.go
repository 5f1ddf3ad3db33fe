package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rail/communication"
	"rail/game"
	"rail/gamemaster"

	"github.com/gorilla/websocket"
)

// ClientCommunicator talks to a judge server.
type ClientCommunicator struct {
	serverURL string
	http      *http.Client
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (cc *ClientCommunicator) Generate(seed uint64, variant string) (string, error) {
	q := url.Values{}
	q.Set("seed", strconv.FormatUint(seed, 10))
	q.Set("variant", variant)
	resp, err := cc.http.Get(cc.serverURL + "/gen?" + q.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to request instance: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read instance: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

func (cc *ClientCommunicator) Score(input, output string) (gamemaster.Verdict, error) {
	var v gamemaster.Verdict
	err := cc.post("/score", communication.JudgeRequest{Input: input, Output: output}, &v)
	return v, err
}

func (cc *ClientCommunicator) Visualize(input, output string, turn int) (gamemaster.Verdict, error) {
	var v gamemaster.Verdict
	err := cc.post("/vis", communication.JudgeRequest{Input: input, Output: output, Turn: turn}, &v)
	return v, err
}

func (cc *ClientCommunicator) MaxTurn(input, output string) (int, error) {
	var resp communication.MaxTurnResponse
	err := cc.post("/max_turn", communication.JudgeRequest{Input: input, Output: output}, &resp)
	return resp.MaxTurn, err
}

// Replay streams the snapshots of a judged run to onSnapshot and returns the verdict.
func (cc *ClientCommunicator) Replay(ctx context.Context, input, output string, onSnapshot func(*game.Snapshot)) (gamemaster.Verdict, error) {
	wsURL := "ws" + strings.TrimPrefix(cc.serverURL, "http") + "/replay"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return gamemaster.Verdict{}, fmt.Errorf("failed to open replay stream: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(communication.JudgeRequest{Input: input, Output: output}); err != nil {
		return gamemaster.Verdict{}, fmt.Errorf("failed to send replay request: %w", err)
	}
	for {
		var msg communication.ReplayMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return gamemaster.Verdict{}, fmt.Errorf("replay stream ended without verdict: %w", err)
		}
		if msg.Verdict != nil {
			return *msg.Verdict, nil
		}
		if msg.Snapshot != nil && onSnapshot != nil {
			onSnapshot(msg.Snapshot)
		}
	}
}

func (cc *ClientCommunicator) post(path string, req, out any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := cc.http.Post(cc.serverURL+path, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ communication.Judge = (*ClientCommunicator)(nil)
