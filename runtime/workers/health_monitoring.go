package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/gachip90/employee-task-management-be/observability"
)

// HealthMonitoringWorker samples this process's CPU and RSS on a ticker and
// feeds the monitor backing the /health endpoint.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	monitor        *observability.Monitor
	metricInterval time.Duration
}

func NewHealthMonitoringWorker(log *slog.Logger, monitor *observability.Monitor,
	metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{log: log, monitor: monitor, metricInterval: metricInterval}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			cpu, err := p.CPUPercent()
			if err != nil {
				w.log.Error("Error while finding process cpu usage", "err", err)
				continue
			}
			mem, err := p.MemoryInfo()
			if err != nil {
				w.log.Error("Error while finding process memory usage", "err", err)
				continue
			}
			w.monitor.SetProcessStats(cpu, mem.RSS)
		}
	}
}
