package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder("test")
	reg := prometheus.NewRegistry()
	r.Register(reg)

	r.RecordAttach(MechanismStandard)
	r.RecordAttach(MechanismStandard)
	r.RecordAttach(MechanismLegacy)
	r.RecordDetach(MechanismLegacy)
	r.RecordWrapperCall("click")
	r.RecordFire("saved")
	r.RecordHotkeyMatch("ctrl+s")
	r.RecordPanic("saved")
	r.AddCachedListeners(3)
	r.AddCachedListeners(-1)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.attaches.WithLabelValues(MechanismStandard)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.attaches.WithLabelValues(MechanismLegacy)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.detaches.WithLabelValues(MechanismLegacy)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.wrapperCalls.WithLabelValues("click")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.channelFires.WithLabelValues("saved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.hotkeyMatches.WithLabelValues("ctrl+s")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.callbackPanics.WithLabelValues("saved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cachedListeners))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Positive(t, count)
}

func TestRecorderDuplicateRegistrationPanics(t *testing.T) {
	r := NewRecorder("dup")
	reg := prometheus.NewRegistry()
	r.Register(reg)

	assert.Panics(t, func() { r.Register(reg) })
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.Register(prometheus.NewRegistry())
		r.RecordAttach(MechanismStandard)
		r.RecordDetach(MechanismStandard)
		r.RecordWrapperCall("click")
		r.RecordFire("x")
		r.RecordHotkeyMatch("x")
		r.RecordPanic("x")
		r.AddCachedListeners(1)
	})
}
