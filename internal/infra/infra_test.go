package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"tarif/internal/config"
	"tarif/internal/modules/routing"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := NewRedis(context.Background(), mr.Addr()); err == nil {
		t.Error("expected ping error against a closed server")
	}
}

func TestNewRouteOracle(t *testing.T) {
	cfg := config.RoutingConfig{Provider: "google", SpeedKmh: 40, DetourFactor: 1.3, CacheTTL: time.Hour}

	o, err := NewRouteOracle(cfg, nil)
	if err != nil || o != nil {
		t.Fatalf("google without key = %v, %v; want nil oracle", o, err)
	}

	cfg.Provider = "haversine"
	o, err = NewRouteOracle(cfg, nil)
	if err != nil {
		t.Fatalf("haversine: %v", err)
	}
	if _, ok := o.(*routing.CrowFliesOracle); !ok {
		t.Errorf("haversine oracle type = %T", o)
	}

	mr := miniredis.RunT(t)
	client, err := NewRedis(context.Background(), mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()
	o, err = NewRouteOracle(cfg, client)
	if err != nil {
		t.Fatalf("cached haversine: %v", err)
	}
	if _, ok := o.(*routing.CachedOracle); !ok {
		t.Errorf("cached oracle type = %T", o)
	}

	cfg.Provider = "carrier-pigeon"
	if _, err := NewRouteOracle(cfg, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}
