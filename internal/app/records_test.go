package app

import (
	"testing"

	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/config"
)

func TestResolveRange(t *testing.T) {
	rc := &runContext{cfg: &config.Config{DefaultRange: "30d"}}

	r, err := rc.resolveRange("")
	if err != nil {
		t.Fatalf("resolveRange: %v", err)
	}
	if r != analytics.Range30d {
		t.Errorf("empty flag resolved to %s, want the configured default", r)
	}

	r, err = rc.resolveRange("7d")
	if err != nil {
		t.Fatalf("resolveRange: %v", err)
	}
	if r != analytics.Range7d {
		t.Errorf("flag resolved to %s, want 7d", r)
	}

	if _, err := rc.resolveRange("2w"); err == nil {
		t.Error("expected error for unsupported range token")
	}
}
