package sheetstore

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func rateLimitErr() error {
	return &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota exceeded"}
}

func testPolicy(slept *[]time.Duration) RetryPolicy {
	p := DefaultRetryPolicy()
	p.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return p
}

func TestRunSucceedsFirstTry(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := testPolicy(&slept).run(func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if calls != 1 || len(slept) != 0 {
		t.Fatalf("calls=%d sleeps=%d, want 1 and 0", calls, len(slept))
	}
}

func TestRunRetriesRateLimitWithBackoff(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := testPolicy(&slept).run(func() error {
		calls++
		if calls < 3 {
			return rateLimitErr()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("op called %d times, want 3", calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("slept %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestRunExhaustsBudget(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := testPolicy(&slept).run(func() error {
		calls++
		return rateLimitErr()
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if calls != 5 {
		t.Fatalf("op called %d times, want the full budget of 5", calls)
	}
	if len(slept) != 4 {
		t.Fatalf("slept %d times, want 4 (no sleep after the last attempt)", len(slept))
	}
	// The underlying API error stays reachable through the wrap chain.
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusTooManyRequests {
		t.Fatalf("wrapped error lost the API cause: %v", err)
	}
}

func TestRunDoesNotRetryOtherErrors(t *testing.T) {
	var slept []time.Duration
	calls := 0
	boom := errors.New("boom")
	err := testPolicy(&slept).run(func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the original error", err)
	}
	if errors.Is(err, ErrRateLimited) {
		t.Fatal("non-429 failure reported as rate limited")
	}
	if calls != 1 || len(slept) != 0 {
		t.Fatalf("calls=%d sleeps=%d, want a single attempt", calls, len(slept))
	}
}

func TestRunDoesNotRetryOtherAPICodes(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := testPolicy(&slept).run(func() error {
		calls++
		return &googleapi.Error{Code: http.StatusForbidden}
	})
	if err == nil || calls != 1 {
		t.Fatalf("err=%v calls=%d, want one failed attempt", err, calls)
	}
}
