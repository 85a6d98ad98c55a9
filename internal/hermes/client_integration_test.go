//go:build integration

package hermes

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func skipWithoutNATS(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}
	return url
}

func TestIntegration_PubSub(t *testing.T) {
	natsURL := skipWithoutNATS(t)

	client, err := NewClient(natsURL, os.Getenv("NATS_TOKEN"), slog.Default())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan Navigate, 1)

	err = client.Subscribe(SubjectNavigate, func(subject string, data []byte) {
		var msg Navigate
		json.Unmarshal(data, &msg)
		received <- msg
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := client.Publish(SubjectNavigate, Navigate{SessionID: "it", Segment: 2, Anchor: "segment-2"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case msg := <-received:
		if msg.Anchor != "segment-2" {
			t.Errorf("expected anchor segment-2, got %v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
