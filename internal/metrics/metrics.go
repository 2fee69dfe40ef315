// Package metrics implements the internal counters behind INFO (§1.5 of
// SPEC_FULL): a small prometheus registry plus process-level stats
// sampled from gopsutil — not exposed over HTTP (no transport component
// is in scope), read back only by the INFO command. The server's client
// table updates the connection counters and the active-expiry sweeper
// updates ExpiredKeys; nothing updates the command, keyspace hit/miss,
// blocked-client or pub/sub instruments, so INFO reports them as 0.
//
// Grounded on the teacher's GeneralStats/RDBStats hand-incremented int64
// counters and its gopsutil-based memory sampling in mem.go; we keep the
// gopsutil sampling exactly, and replace the hand-rolled counters with
// real prometheus.Counter/Gauge instruments so they compose with the
// rest of the ecosystem the way the teacher's own go.mod already signals
// it wants (prometheus/client_golang, via packetd-packetd's go.mod, is
// the only part of the domain stack the teacher itself did not already
// reach for).
package metrics

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Registry is the server's counter/gauge set, safe for concurrent use
// (every prometheus instrument already is).
type Registry struct {
	reg *prometheus.Registry

	CommandsProcessed prometheus.Counter
	ConnectionsTotal  prometheus.Counter
	ConnectedClients  prometheus.Gauge
	ExpiredKeys       prometheus.Counter
	KeyspaceHits      prometheus.Counter
	KeyspaceMisses    prometheus.Counter
	BlockedClients    prometheus.Gauge
	PubSubChannels    prometheus.Gauge
}

func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}
	r.CommandsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vkeydb_commands_processed_total", Help: "Total commands processed.",
	})
	r.ConnectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vkeydb_connections_received_total", Help: "Total connections accepted.",
	})
	r.ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vkeydb_connected_clients", Help: "Currently connected clients.",
	})
	r.ExpiredKeys = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vkeydb_expired_keys_total", Help: "Keys removed by lazy or active expiry.",
	})
	r.KeyspaceHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vkeydb_keyspace_hits_total", Help: "Successful key lookups.",
	})
	r.KeyspaceMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vkeydb_keyspace_misses_total", Help: "Failed key lookups.",
	})
	r.BlockedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vkeydb_blocked_clients", Help: "Clients currently parked in a blocking command.",
	})
	r.PubSubChannels = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vkeydb_pubsub_channels", Help: "Channels with at least one subscriber.",
	})
	r.reg.MustRegister(
		r.CommandsProcessed, r.ConnectionsTotal, r.ConnectedClients,
		r.ExpiredKeys, r.KeyspaceHits, r.KeyspaceMisses,
		r.BlockedClients, r.PubSubChannels,
	)
	return r
}

// Gather returns the raw prometheus metric families, used by tests and
// by INFO's formatting layer to read counters back without duplicating
// prometheus's own accumulation logic.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}
	return families, nil
}

// ProcessStats is the subset of gopsutil process/memory stats INFO's
// "Memory" section reports, mirroring the teacher's mem.go fields.
type ProcessStats struct {
	RSSBytes       uint64
	UsedMemPercent float64
	TotalSystemMem uint64
}

// SampleProcess reads current process RSS and overall system memory
// usage via gopsutil, exactly as the teacher's mem.go does (same two
// library calls), just returning a struct instead of printing directly.
func SampleProcess(pid int32) (ProcessStats, error) {
	var stats ProcessStats
	proc, err := process.NewProcess(pid)
	if err != nil {
		return stats, err
	}
	memInfo, err := proc.MemoryInfo()
	if err == nil && memInfo != nil {
		stats.RSSBytes = memInfo.RSS
	}
	vm, err := mem.VirtualMemory()
	if err == nil && vm != nil {
		stats.UsedMemPercent = vm.UsedPercent
		stats.TotalSystemMem = vm.Total
	}
	return stats, nil
}
