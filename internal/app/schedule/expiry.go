package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	bookingsvc "villastay/internal/app/services/booking"
)

// ExpiryJob periodically cancels pending bookings that outlived their hold
// so abandoned checkouts release their dates.
type ExpiryJob struct {
	Bookings   *bookingsvc.Service
	PendingTTL time.Duration
	Interval   time.Duration
	Logger     *slog.Logger

	scheduler gocron.Scheduler
}

// Start registers and launches the job. Stop must be called on shutdown.
func (j *ExpiryJob) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(j.Interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if _, err := j.Bookings.ExpireStalePending(runCtx, j.PendingTTL); err != nil {
				if j.Logger != nil {
					j.Logger.Error("pending booking expiry failed", "error", err)
				}
			}
		}),
	)
	if err != nil {
		return err
	}
	j.scheduler = scheduler
	scheduler.Start()
	if j.Logger != nil {
		j.Logger.Info("booking expiry job started", "interval", j.Interval, "pending_ttl", j.PendingTTL)
	}
	return nil
}

func (j *ExpiryJob) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	return j.scheduler.Shutdown()
}
