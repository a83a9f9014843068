package http

import (
	"context"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"quiz-admin-service/internal/domain"
)

func TestResultFeedStreamsSavedResults(t *testing.T) {
	server := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws/results"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect subscribed event first.
	msgType, _ := readNext(conn, t)
	if msgType != "subscribed" {
		t.Fatalf("expected subscribed, got %s", msgType)
	}

	resp, data := server.do(t, "POST", "/api/results", `{"regNumber":"CSC/2024/001","score":7,"total":10}`)
	if resp.StatusCode != 200 {
		t.Fatalf("save: expected 200, got %d: %s", resp.StatusCode, data)
	}

	msgType, payload := readNext(conn, t)
	if msgType != "result" {
		t.Fatalf("expected result, got %s", msgType)
	}
	if payload["regNumber"] != "CSC/2024/001" || payload["year"] != "2024" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestResultFeedUnsubscribesOnDisconnect(t *testing.T) {
	server := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws/results"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	readNext(conn, t)
	if server.feed.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", server.feed.Subscribers())
	}
	conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for server.feed.Subscribers() != 0 {
		select {
		case <-ctx.Done():
			t.Fatalf("subscriber not released after disconnect")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Publishing with no subscribers must not block.
	server.feed.Publish(domain.Result{ID: "late"})
}

func readNext(conn *websocket.Conn, t *testing.T) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
