package security

import (
	"testing"
	"time"
)

func TestAllowLimitsPerWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	for i := 0; i < 2; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit allowed")
	}

	// Other clients have their own window
	if !rl.Allow("10.0.0.2") {
		t.Error("unrelated client denied")
	}
}

func TestAllowStartsNewWindowAfterPeriod(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("client") {
		t.Fatal("first request denied")
	}
	if rl.Allow("client") {
		t.Fatal("second request in the same window allowed")
	}

	rl.mu.Lock()
	rl.clients["client"].started = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.Allow("client") {
		t.Error("request denied after the window lapsed")
	}
}

func TestAllowEvictsStaleClients(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	rl.mu.Lock()
	rl.clients["stale"] = &window{count: 5, started: time.Now().Add(-3 * time.Minute)}
	rl.mu.Unlock()

	// Starting any new window sweeps entries older than two periods
	if !rl.Allow("fresh") {
		t.Fatal("fresh client denied")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["stale"]; ok {
		t.Error("stale client entry not evicted")
	}
}
