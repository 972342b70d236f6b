package optics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/optoclinic-api/internal/model"
	"github.com/jwalitptl/optoclinic-api/internal/optics"
	"github.com/jwalitptl/optoclinic-api/pkg/metrics"
)

func float(v float64) *float64 { return &v }

func newTestService() (*Service, *metrics.Metrics) {
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	return NewService(m), m
}

func TestKeratometry(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	res, err := svc.Keratometry(ctx, &model.KeratometryRequest{RadiusMM: float(7.5)})
	require.NoError(t, err)
	assert.InDelta(t, 45.0, res.Diopters, 1e-9)

	res, err = svc.Keratometry(ctx, &model.KeratometryRequest{Diopters: float(45)})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, res.RadiusMM, 1e-9)

	res, err = svc.Keratometry(ctx, &model.KeratometryRequest{RadiusMM: float(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Diopters)

	_, err = svc.Keratometry(ctx, &model.KeratometryRequest{})
	assert.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OpticsConversions.WithLabelValues("mm_to_diopters")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpticsConversions.WithLabelValues("diopters_to_mm")))
}

func TestContactLens(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res := svc.ContactLens(ctx, &model.ContactLensRequest{Sphere: -5, Cylinder: -2, Axis: 180})
	assert.Equal(t, optics.DefaultVertexDistanceMM, res.VertexMM)
	assert.Equal(t, optics.Rx{Sphere: -4.75, Cylinder: -1.75, Axis: 180}, res.ContactLens)
	assert.Equal(t, optics.Rx{Sphere: -5, Cylinder: -2, Axis: 180}, res.Spectacle)

	res = svc.ContactLens(ctx, &model.ContactLensRequest{Sphere: -5, Axis: 90, VertexMM: float(0)})
	assert.Equal(t, 0.0, res.VertexMM)
	assert.Equal(t, -5.0, res.ContactLens.Sphere)

	res = svc.ContactLens(ctx, &model.ContactLensRequest{})
	assert.Equal(t, optics.Rx{}, res.ContactLens)
}

func TestAxis(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	geo, err := svc.Axis(ctx, &model.AxisRequest{Axis: 90, Radius: float(10)})
	require.NoError(t, err)
	assert.InDelta(t, 0, geo.Tip.X, 1e-9)
	assert.InDelta(t, 10, geo.Tip.Y, 1e-9)

	geo, err = svc.Axis(ctx, &model.AxisRequest{Axis: 0, Style: "open155", Barb: float(0)})
	require.NoError(t, err)
	assert.Equal(t, geo.Tip, geo.LeftBarb)

	_, err = svc.Axis(ctx, &model.AxisRequest{Axis: 0, Style: "zigzag"})
	assert.Error(t, err)
}
