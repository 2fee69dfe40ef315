package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/vkeydb/vkeydb/internal/metrics"
)

// InfoSections renders the INFO reply body, mirroring the teacher's
// info.go section layout (Server/Clients/Memory/Stats/Keyspace) but
// backed by real prometheus counters and gopsutil samples instead of
// hand-incremented fields.
func (s *Server) InfoSections() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Server\r\n")
	fmt.Fprintf(&b, "run_id:%s\r\n", s.RunID)
	fmt.Fprintf(&b, "uptime_in_seconds:%d\r\n", s.UptimeSeconds())
	fmt.Fprintf(&b, "\r\n")

	fmt.Fprintf(&b, "# Clients\r\n")
	fmt.Fprintf(&b, "connected_clients:%d\r\n", len(s.Clients()))
	fmt.Fprintf(&b, "\r\n")

	fmt.Fprintf(&b, "# Memory\r\n")
	if stats, err := metrics.SampleProcess(int32(os.Getpid())); err == nil {
		fmt.Fprintf(&b, "used_memory:%d\r\n", stats.RSSBytes)
		fmt.Fprintf(&b, "used_memory_system_percent:%.2f\r\n", stats.UsedMemPercent)
	}
	fmt.Fprintf(&b, "\r\n")

	fmt.Fprintf(&b, "# Stats\r\n")
	fmt.Fprintf(&b, "total_commands_processed:%s\r\n", counterValue(s.Metrics, "vkeydb_commands_processed_total"))
	fmt.Fprintf(&b, "expired_keys:%s\r\n", counterValue(s.Metrics, "vkeydb_expired_keys_total"))
	fmt.Fprintf(&b, "keyspace_hits:%s\r\n", counterValue(s.Metrics, "vkeydb_keyspace_hits_total"))
	fmt.Fprintf(&b, "keyspace_misses:%s\r\n", counterValue(s.Metrics, "vkeydb_keyspace_misses_total"))
	fmt.Fprintf(&b, "\r\n")

	fmt.Fprintf(&b, "# Keyspace\r\n")
	for i := 0; i < s.DBs.Count(); i++ {
		n := s.DBs.Get(i).Size()
		if n > 0 {
			fmt.Fprintf(&b, "db%d:keys=%d\r\n", i, n)
		}
	}

	return b.String()
}

func counterValue(m *metrics.Registry, name string) string {
	families, err := m.Gather()
	if err != nil {
		return "0"
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, mm := range fam.GetMetric() {
			if c := mm.GetCounter(); c != nil {
				return fmt.Sprintf("%d", int64(c.GetValue()))
			}
		}
	}
	return "0"
}
