package fabric

import (
	"context"
	"errors"
	"time"

	"github.com/dadfw/dad/internal/logging"
)

// ErrPollTimeout is returned when a job does not reach a terminal state
// within the waiter's timeout.
var ErrPollTimeout = errors.New("job polling timed out")

// waitPhase tracks a wait through the job's lifetime.
type waitPhase int

const (
	phaseSubmitted waitPhase = iota
	phasePolling
	phaseTerminal
)

// JobWaiter polls a submitted job until it leaves its in-flight states.
// Sleep is injectable so tests can simulate time; elapsed time is accounted
// in poll intervals, so the timeout check is deterministic.
type JobWaiter struct {
	Interval time.Duration // defaults to 10s
	Timeout  time.Duration // zero waits forever
	Sleep    func(ctx context.Context, d time.Duration) error
	Log      *logging.Logger
}

// Wait polls the job via the given check function until a terminal status is
// reached. A single failed status check aborts the wait with that error.
func (w *JobWaiter) Wait(ctx context.Context, check func(ctx context.Context) (*JobInstance, error)) (*JobInstance, error) {
	interval := w.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	sleep := w.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	phase := phaseSubmitted
	var elapsed time.Duration

	for {
		job, err := check(ctx)
		if err != nil {
			return nil, err
		}

		if job.Status.IsTerminal() {
			if w.Log != nil {
				w.Log.Info().Str("job", job.ID).Str("status", string(job.Status)).Dur("elapsed", elapsed).Msg("job reached terminal state")
			}
			return job, nil
		}

		if phase == phaseSubmitted {
			phase = phasePolling
			if w.Log != nil {
				w.Log.Debug().Str("job", job.ID).Str("status", string(job.Status)).Msg("job in flight, polling")
			}
		}

		if w.Timeout > 0 && elapsed+interval > w.Timeout {
			return job, ErrPollTimeout
		}
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}
		elapsed += interval
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
