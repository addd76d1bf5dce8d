package testkit

import (
	"testing"
	"time"
)

var nowFn = time.Now

func TestSwap_FunctionAndRestore(t *testing.T) {
	fixed := time.Date(2018, 5, 1, 12, 0, 0, 0, time.UTC)

	// run swap in a subtest so Cleanup runs before we validate restoration
	t.Run("swap-in-subtest", func(t *testing.T) {
		Swap(t, &nowFn, func() time.Time { return fixed })
		if !nowFn().Equal(fixed) {
			t.Fatalf("swap did not take effect")
		}
	})

	// after subtest completes, Cleanup restored the original
	if nowFn().Equal(fixed) {
		t.Fatalf("swap did not restore original")
	}
}

func TestSwap_NonFunctionType(t *testing.T) {
	val := 10
	t.Run("swap-int", func(t *testing.T) {
		Swap(t, &val, 99)
		if val != 99 {
			t.Fatalf("swap did not take effect, got %d", val)
		}
	})
	if val != 10 {
		t.Fatalf("swap did not restore original, got %d", val)
	}
}
