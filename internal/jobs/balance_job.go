package jobs

import (
	"context"
	"log/slog"
	"time"

	"ostrov/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// BalanceJob polls the contract account balance hourly and logs it, so a
// draining balance shows up in the logs before dispatches start failing.
type BalanceJob struct {
	provider ports.TariffProvider
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBalanceJob creates the hourly balance poll.
func NewBalanceJob(provider ports.TariffProvider, logger *slog.Logger) *BalanceJob {
	return &BalanceJob{
		provider: provider,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "balance_job"),
	}
}

// Start begins the balance job, polling at the top of every hour.
func (j *BalanceJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		balance, err := j.provider.GetBalance(ctx)
		if err != nil {
			j.logger.WarnContext(ctx, "Balance poll failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Contract account balance", "balance_kopecks", balance)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Balance job started (polling hourly)")
	return nil
}

// Stop stops the balance job.
func (j *BalanceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Balance job stopped")
}
