package rtnl

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric labels:
//
//	op: the operation, such as create_bridge or list_fdb
//	result: ok or error
type metrics struct {
	Requests *prometheus.CounterVec
	Messages *prometheus.CounterVec
	Reads    *prometheus.CounterVec
	Records  *prometheus.GaugeVec
}

func newMetrics() *metrics {
	return &metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtnl_requests_total",
			Help: "Requests sent to the kernel",
		}, []string{"op", "result"}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtnl_dump_messages_total",
			Help: "Messages parsed out of dump replies",
		}, []string{"op"}),
		Reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtnl_dump_reads_total",
			Help: "Datagrams read while dumping",
		}, []string{"op"}),
		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rtnl_dump_records",
			Help: "Records returned by the last successful dump",
		}, []string{"op"}),
	}
}

// (Nastily) use reflection to avoid having to manually register everything.
func (m *metrics) register(reg prometheus.Registerer) error {
	v := reflect.ValueOf(*m)
	i := 0
	for i = 0; i < v.NumField(); i++ {
		vv, ok := v.Field(i).Interface().(prometheus.Collector)
		if !ok {
			return fmt.Errorf("error casting the interface for index %d", i)
		}
		if err := reg.Register(vv); err != nil {
			return fmt.Errorf("error registering index %d: %w", i, err)
		}
	}
	slog.Log(context.Background(), LevelTrace, "registered collectors", "i", i)
	return nil
}

func (m *metrics) request(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Requests.With(prometheus.Labels{"op": op, "result": result}).Inc()
}
