package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.ReservationsTotal)
	assert.NotNil(t, m.CancellationsTotal)
	assert.NotNil(t, m.DistributedLockDuration)
	assert.NotNil(t, m.ActiveReservations)
}

func TestReservationsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ReservationsTotal.WithLabelValues("success").Inc()
	m.ReservationsTotal.WithLabelValues("success").Inc()
	m.ReservationsTotal.WithLabelValues("table_conflict").Inc()
	m.ReservationsTotal.WithLabelValues("user_conflict").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "reservations_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "reservations_total metric not found")
}

func TestCancellationsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.CancellationsTotal.WithLabelValues("success").Inc()
	m.CancellationsTotal.WithLabelValues("too_late").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "reservation_cancellations_total" {
			found = true
			assert.Equal(t, 2, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "reservation_cancellations_total metric not found")
}

func TestActiveReservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ActiveReservations.WithLabelValues("pending").Set(3)
	m.ActiveReservations.WithLabelValues("confirmed").Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "active_reservations" {
			found = true
			assert.Equal(t, 2, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "active_reservations metric not found")
}

func TestDistributedLockDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.DistributedLockDuration.WithLabelValues("acquire", "success").Observe(0.015)
	m.DistributedLockDuration.WithLabelValues("release", "success").Observe(0.002)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "distributed_lock_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found, "distributed_lock_duration_seconds metric not found")
}

func TestInit_CreatesDefaultMetrics(t *testing.T) {
	oldMetrics := defaultMetrics
	defer func() { defaultMetrics = oldMetrics }()

	// Initはデフォルトレジストリに登録するため、テストでは直接セット
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	defaultMetrics = m

	got := Get()
	require.NotNil(t, got)
	assert.Equal(t, m, got)
}
