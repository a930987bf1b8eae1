package redis

import (
	"testing"

	"go.uber.org/zap"

	"bnu-planner/config"
)

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	if err == nil {
		t.Fatal("expected connection error for unreachable address")
	}
}

func TestClient_Key(t *testing.T) {
	c := NewWithClient(nil, "planner:", zap.NewNop())
	if got := c.key("courses"); got != "planner:courses" {
		t.Errorf("unexpected key %q", got)
	}
}
