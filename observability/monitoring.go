package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// RuntimeStats aggregates the counters and process self-stats exposed on
// the stats endpoint.
type RuntimeStats struct {
	UsersRegistered  uint64  `json:"users_registered"`
	MessagesAppended uint64  `json:"messages_appended"`
	CallsStarted     uint64  `json:"calls_started"`
	SignalsRelayed   uint64  `json:"signals_relayed"`
	AllocMemMb       uint64  `json:"alloc_mem_mb"`
	NumGC            uint32  `json:"num_gc"`
	RssMb            uint64  `json:"rss_mb"`
	CPUPercent       float64 `json:"cpu_percent"`
}

// StatsManager collects cheap atomic counters from the request path and
// periodically enriches them with process self-stats. Reads always return
// the latest complete snapshot.
type StatsManager struct {
	log *slog.Logger

	mu     sync.RWMutex
	latest RuntimeStats

	usersRegistered  atomic.Uint64
	messagesAppended atomic.Uint64
	callsStarted     atomic.Uint64
	signalsRelayed   atomic.Uint64
}

func NewStatsManager(log *slog.Logger) *StatsManager {
	return &StatsManager{log: log}
}

func (m *StatsManager) IncrUsersRegistered()  { m.usersRegistered.Add(1) }
func (m *StatsManager) IncrMessagesAppended() { m.messagesAppended.Add(1) }
func (m *StatsManager) IncrCallsStarted()     { m.callsStarted.Add(1) }
func (m *StatsManager) IncrSignalsRelayed()   { m.signalsRelayed.Add(1) }

// Snapshot merges the live counters into the last collected self-stats.
func (m *StatsManager) Snapshot() RuntimeStats {
	m.mu.RLock()
	stats := m.latest
	m.mu.RUnlock()

	stats.UsersRegistered = m.usersRegistered.Load()
	stats.MessagesAppended = m.messagesAppended.Load()
	stats.CallsStarted = m.callsStarted.Load()
	stats.SignalsRelayed = m.signalsRelayed.Load()
	return stats
}

// Run refreshes process self-stats on a ticker until the context ends.
func (m *StatsManager) Run(ctx context.Context, interval time.Duration) error {
	m.log.Info("Starting stats reporter", "interval", interval)

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.collect(proc)
		}
	}
}

func (m *StatsManager) collect(proc *process.Process) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	var rssMb uint64
	if info, err := proc.MemoryInfo(); err == nil {
		rssMb = info.RSS / 1024 / 1024
	}
	cpuPercent, _ := proc.CPUPercent()

	m.mu.Lock()
	m.latest.AllocMemMb = memStats.Alloc / 1024 / 1024
	m.latest.NumGC = memStats.NumGC
	m.latest.RssMb = rssMb
	m.latest.CPUPercent = cpuPercent
	m.mu.Unlock()

	stats := m.Snapshot()
	m.log.Debug("Runtime stats",
		"users", stats.UsersRegistered,
		"messages", stats.MessagesAppended,
		"calls", stats.CallsStarted,
		"signals", stats.SignalsRelayed,
		"alloc_mb", stats.AllocMemMb,
		"rss_mb", stats.RssMb,
	)
}
