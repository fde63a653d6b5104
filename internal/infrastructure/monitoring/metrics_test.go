package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTranslation("root", time.Millisecond)
		m.RecordTranslationError("overflow")
		m.ObserveLinkHops(3)
		m.SetInitRefs(1)
		m.RecordPanic("3")
		m.SetHandles("blocking", 2)
	})
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())
	assert.Nil(t, m.Registry())
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordTranslation("root", time.Millisecond)
	m.RecordTranslation("home", time.Millisecond)
	m.RecordTranslationError("overflow")
	m.RecordTranslationError("overflow")
	m.RecordTranslationError("loop")
	m.ObserveLinkHops(2)
	m.ObserveLinkHops(0)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Translations)
	assert.Equal(t, int64(3), s.Errors)
	assert.Equal(t, map[string]int64{"overflow": 2, "loop": 1}, s.ErrorsByCause)
	assert.Equal(t, int64(2), s.LinksFollowed)
	assert.InDelta(t, 0.002, s.TotalDuration, 1e-9)

	s.ErrorsByCause["overflow"] = 100
	assert.Equal(t, int64(2), m.Snapshot().ErrorsByCause["overflow"], "snapshot must be a copy")
}

func TestPrivateRegistry(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.RecordTranslation("tmp", time.Microsecond)
	b.RecordPanic("3")

	families, err := a.Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["posixshim_translations_total"])
	assert.False(t, names["posixshim_panics_total"], "vectors without observations are not exported")
}
