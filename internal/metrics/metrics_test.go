package metrics

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pixil98/mudsave/internal/objsave"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.Save(KindRent, "crash", nil)
	r.Save(KindRent, "crash", nil)
	r.Save(KindRent, "rented", errors.New("disk full"))
	r.Load(KindRoom, ResultMissing)
	r.Objects(KindRent, objsave.Stats{Restored: 7, Spilled: 2})

	testutil.AssertEqual(t, "crash saves", promtest.ToFloat64(r.saves.WithLabelValues(KindRent, "crash", ResultOK)), 2.0)
	testutil.AssertEqual(t, "failed saves", promtest.ToFloat64(r.saves.WithLabelValues(KindRent, "rented", ResultError)), 1.0)
	testutil.AssertEqual(t, "missing loads", promtest.ToFloat64(r.loads.WithLabelValues(KindRoom, ResultMissing)), 1.0)
	testutil.AssertEqual(t, "restored", promtest.ToFloat64(r.objects.WithLabelValues(KindRent, "restored")), 7.0)
	testutil.AssertEqual(t, "spilled", promtest.ToFloat64(r.objects.WithLabelValues(KindRent, "spilled")), 2.0)
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.Save(KindRent, "crash", nil)
	r.Load(KindRent, ResultOK)
	r.Objects(KindRent, objsave.Stats{Restored: 1})
	r.Sweep(KindRent, 0.5)
}
