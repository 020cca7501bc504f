package scrollscape

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/phanxgames/scrollscape"

// sceneSeq numbers scenes so several can share one meter provider.
var sceneSeq atomic.Int64

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// sceneMetrics holds the scene's OTel instruments. They are no-ops unless the
// host installs a meter provider. Every series carries a "scene" attribute.
type sceneMetrics struct {
	ticks        metric.Int64Counter
	focusChanges metric.Int64Counter
	clamped      metric.Int64Counter
	entities     metric.Int64ObservableGauge

	scene attribute.KeyValue
	attrs metric.MeasurementOption
	reg   metric.Registration
}

// newSceneMetrics creates the instruments on m. The entities gauge reads
// count from the meter reader's goroutine.
func newSceneMetrics(m metric.Meter, id int64, count *atomic.Int64) (sceneMetrics, error) {
	sm := sceneMetrics{scene: attribute.Int64("scene", id)}
	sm.attrs = metric.WithAttributes(sm.scene)
	var err error

	sm.ticks, err = m.Int64Counter(
		"scrollscape.ticks",
		metric.WithDescription("Total ticks delivered"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating ticks counter: %w", err)
	}

	sm.focusChanges, err = m.Int64Counter(
		"scrollscape.focus.changes",
		metric.WithDescription("Total focus transitions published"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating focus counter: %w", err)
	}

	sm.clamped, err = m.Int64Counter(
		"scrollscape.delta.clamped",
		metric.WithDescription("Ticks whose delta was negative or non-finite"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating clamp counter: %w", err)
	}

	sm.entities, err = m.Int64ObservableGauge(
		"scrollscape.entities",
		metric.WithDescription("Attached motion entities"),
	)
	if err != nil {
		return sm, fmt.Errorf("creating entities gauge: %w", err)
	}

	attrs := metric.WithAttributes(sm.scene)
	sm.reg, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(sm.entities, count.Load(), attrs)
			return nil
		},
		sm.entities,
	)
	if err != nil {
		return sm, fmt.Errorf("registering entities callback: %w", err)
	}

	return sm, nil
}

// noopSceneMetrics returns instruments that record nothing.
func noopSceneMetrics() sceneMetrics {
	m := noop.NewMeterProvider().Meter(instrumentationName)
	sm, _ := newSceneMetrics(m, 0, new(atomic.Int64))
	return sm
}

func (sm sceneMetrics) recordTick() {
	sm.ticks.Add(context.Background(), 1, sm.attrs)
}

func (sm sceneMetrics) recordFocus(id string) {
	sm.focusChanges.Add(context.Background(), 1,
		metric.WithAttributes(sm.scene, attribute.String("landmark", id)))
}

func (sm sceneMetrics) recordClamp() {
	sm.clamped.Add(context.Background(), 1, sm.attrs)
}

// unregister drops the entities callback. Safe to call more than once.
func (sm *sceneMetrics) unregister() error {
	if sm.reg == nil {
		return nil
	}
	err := sm.reg.Unregister()
	sm.reg = nil
	return err
}
