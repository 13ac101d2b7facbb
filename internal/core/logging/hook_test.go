package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "both command and task_id",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithCommand(ctx, "mark-done")
				ctx = WithTaskID(ctx, 7)
				return ctx
			},
			wantKeys: []string{"command", "task_id"},
		},
		{
			name: "only command",
			setupCtx: func() context.Context {
				return WithCommand(context.Background(), "list")
			},
			wantKeys:  []string{"command"},
			wantEmpty: []string{"task_id"},
		},
		{
			name: "only task_id",
			setupCtx: func() context.Context {
				return WithTaskID(context.Background(), 3)
			},
			wantKeys:  []string{"task_id"},
			wantEmpty: []string{"command"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"command", "task_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})

			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := entry[key]; !ok {
					t.Errorf("expected key %q in log output", key)
				}
			}

			for _, key := range tt.wantEmpty {
				if _, ok := entry[key]; ok {
					t.Errorf("unexpected key %q in log output", key)
				}
			}
		})
	}
}
