package ircconn

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricBytesRead     = "irctest_bytes_read_total"
	metricBytesWritten  = "irctest_bytes_written_total"
	metricCommandsSent  = "irctest_commands_sent_total"
	metricLinesReceived = "irctest_lines_received_total"
)

// Stats counts traffic on one connection. The counters live in a private registry so that
// several connections in one process (as in tests) never collide.
type Stats struct {
	registry      *prometheus.Registry
	bytesRead     prometheus.Counter
	bytesWritten  prometheus.Counter
	commandsSent  prometheus.Counter
	linesReceived prometheus.Counter
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	BytesRead     uint64
	BytesWritten  uint64
	CommandsSent  uint64
	LinesReceived uint64
}

func newStats(address string) *Stats {
	labels := prometheus.Labels{"server": address}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help, ConstLabels: labels})
	}
	s := &Stats{
		registry:      prometheus.NewRegistry(),
		bytesRead:     counter(metricBytesRead, "Bytes read from the server under test"),
		bytesWritten:  counter(metricBytesWritten, "Bytes written to the server under test, including terminators"),
		commandsSent:  counter(metricCommandsSent, "Commands written to the server under test"),
		linesReceived: counter(metricLinesReceived, "Non-empty protocol lines received from the server under test"),
	}
	s.registry.MustRegister(s.bytesRead, s.bytesWritten, s.commandsSent, s.linesReceived)
	return s
}

// Registry exposes the counters, e.g. for a promhttp handler.
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Stats) commandSent(frameLen int) {
	s.commandsSent.Inc()
	s.bytesWritten.Add(float64(frameLen))
}

func (s *Stats) bytesReceived(n int) {
	s.bytesRead.Add(float64(n))
}

func (s *Stats) lineReceived() {
	s.linesReceived.Inc()
}

func (s *Stats) Snapshot() StatsSnapshot {
	var snap StatsSnapshot
	families, err := s.registry.Gather()
	if err != nil {
		return snap
	}
	for _, mf := range families {
		metrics := mf.GetMetric()
		if len(metrics) == 0 {
			continue
		}
		value := uint64(metrics[0].GetCounter().GetValue())
		switch mf.GetName() {
		case metricBytesRead:
			snap.BytesRead = value
		case metricBytesWritten:
			snap.BytesWritten = value
		case metricCommandsSent:
			snap.CommandsSent = value
		case metricLinesReceived:
			snap.LinesReceived = value
		}
	}
	return snap
}
