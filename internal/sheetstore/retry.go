package sheetstore

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
)

// ErrRateLimited marks a write that was still rate-limited after the whole
// retry budget was spent.
var ErrRateLimited = errors.New("sheetstore: rate limited")

// RetryPolicy retries rate-limited writes with exponential backoff. Any
// other failure propagates immediately.
type RetryPolicy struct {
	Attempts   int
	Delay      time.Duration
	Multiplier int

	sleep func(time.Duration)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, Delay: time.Second, Multiplier: 2, sleep: time.Sleep}
}

// run replays op until it succeeds or the budget runs out. op must be a pure
// replay of one logical write (an operation descriptor, not a stateful
// closure), so every attempt issues the exact same call.
func (p RetryPolicy) run(op func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	delay := p.Delay
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return err
		}
		if attempt == p.Attempts {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("Rate limited, backing off")
		sleep(delay)
		delay *= time.Duration(p.Multiplier)
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrRateLimited, p.Attempts, err)
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}
