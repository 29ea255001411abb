package cache

import (
	"testing"
	"time"
)

func TestTimed(t *testing.T) {
	c := NewTimed(5 * time.Minute)

	tstart := time.Now()

	c.set("key", []byte("value"), tstart)

	if _, ok := c.get("key", tstart.Add(time.Minute)); !ok {
		t.Errorf("failed to get key that should not be expired")
	}

	if _, ok := c.get("key", tstart.Add(10*time.Minute)); ok {
		t.Errorf("succeeded in getting expired key")
	}

	// Expiry evicts, so rewinding the clock does not resurrect the key.
	if _, ok := c.get("key", tstart.Add(time.Minute)); ok {
		t.Errorf("succeeded in getting key that was previously evicted")
	}
}

func TestTimedMissingKey(t *testing.T) {
	c := NewTimed(time.Minute)
	if _, ok := c.Get("never set"); ok {
		t.Errorf("got a value for a key that was never set")
	}
}
