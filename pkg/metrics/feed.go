package metrics

import "github.com/prometheus/client_golang/prometheus"

// FeedMetrics tracks live store-feed websocket clients.
type FeedMetrics struct {
	connections prometheus.Gauge
	dropped     prometheus.Counter
	broadcasts  prometheus.Counter
}

func NewFeedMetrics(reg prometheus.Registerer) *FeedMetrics {
	if reg == nil {
		return &FeedMetrics{}
	}
	connections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gocart_feed_connections",
		Help: "Open store feed websocket connections.",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gocart_feed_dropped_clients_total",
		Help: "Feed clients disconnected because their send buffer was full.",
	})
	broadcasts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gocart_feed_broadcasts_total",
		Help: "Events fanned out to store rooms.",
	})
	reg.MustRegister(connections, dropped, broadcasts)
	return &FeedMetrics{connections: connections, dropped: dropped, broadcasts: broadcasts}
}

func (m *FeedMetrics) Connected() {
	if m == nil || m.connections == nil {
		return
	}
	m.connections.Inc()
}

func (m *FeedMetrics) Disconnected() {
	if m == nil || m.connections == nil {
		return
	}
	m.connections.Dec()
}

func (m *FeedMetrics) Dropped() {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.Inc()
}

func (m *FeedMetrics) Broadcast() {
	if m == nil || m.broadcasts == nil {
		return
	}
	m.broadcasts.Inc()
}
