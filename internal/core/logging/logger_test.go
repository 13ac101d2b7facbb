package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("tracker")
	ctx := WithCommand(context.Background(), "add")
	logger.Info().Ctx(ctx).Msg("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if cmp := logEntry["cmp"]; cmp != "tracker" {
		t.Errorf("Component() cmp = %v, want %q", cmp, "tracker")
	}

	if command := logEntry["command"]; command != "add" {
		t.Errorf("Component() command = %v, want %q", command, "add")
	}

	if msg := logEntry["message"]; msg != "test message" {
		t.Errorf("Component() message = %v, want %q", msg, "test message")
	}
}
