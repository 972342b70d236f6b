package optics

import (
	"context"

	"github.com/jwalitptl/optoclinic-api/internal/model"
	"github.com/jwalitptl/optoclinic-api/internal/optics"
	"github.com/jwalitptl/optoclinic-api/pkg/errors"
	"github.com/jwalitptl/optoclinic-api/pkg/metrics"
)

const (
	defaultArrowRadius = 1.0
	barbRatio          = 0.15
)

type OpticsService interface {
	Keratometry(ctx context.Context, req *model.KeratometryRequest) (*model.KeratometryResult, error)
	ContactLens(ctx context.Context, req *model.ContactLensRequest) *model.ContactLensResult
	Axis(ctx context.Context, req *model.AxisRequest) (*optics.ArrowGeometry, error)
}

type Service struct {
	metrics *metrics.Metrics
}

func NewService(m *metrics.Metrics) *Service {
	return &Service{metrics: m}
}

// Keratometry fills in the missing half of a radius/power pair. When both
// are given the radius wins.
func (s *Service) Keratometry(ctx context.Context, req *model.KeratometryRequest) (*model.KeratometryResult, error) {
	switch {
	case req.RadiusMM != nil:
		s.metrics.OpticsConversions.WithLabelValues("mm_to_diopters").Inc()
		return &model.KeratometryResult{
			RadiusMM: *req.RadiusMM,
			Diopters: optics.MMToDiopters(*req.RadiusMM),
		}, nil
	case req.Diopters != nil:
		s.metrics.OpticsConversions.WithLabelValues("diopters_to_mm").Inc()
		return &model.KeratometryResult{
			RadiusMM: optics.DioptersToMM(*req.Diopters),
			Diopters: *req.Diopters,
		}, nil
	}
	return nil, errors.BadRequest("radius_mm or diopters is required", nil)
}

func (s *Service) ContactLens(ctx context.Context, req *model.ContactLensRequest) *model.ContactLensResult {
	vertex := optics.DefaultVertexDistanceMM
	if req.VertexMM != nil && *req.VertexMM >= 0 {
		vertex = *req.VertexMM
	}
	spectacle := optics.Rx{Sphere: req.Sphere, Cylinder: req.Cylinder, Axis: req.Axis}

	s.metrics.OpticsConversions.WithLabelValues("contact_lens").Inc()
	return &model.ContactLensResult{
		Spectacle:   spectacle,
		ContactLens: optics.SpectacleToContactLens(spectacle, vertex),
		VertexMM:    vertex,
	}
}

func (s *Service) Axis(ctx context.Context, req *model.AxisRequest) (*optics.ArrowGeometry, error) {
	style, err := optics.ParseArrowStyle(req.Style)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	radius := defaultArrowRadius
	if req.Radius != nil {
		radius = *req.Radius
	}
	barb := radius * barbRatio
	if req.Barb != nil {
		barb = *req.Barb
	}

	s.metrics.OpticsConversions.WithLabelValues("tabo_axis").Inc()
	geometry := optics.Arrow(optics.Point{X: req.CenterX, Y: req.CenterY}, radius, req.Axis, style, barb)
	return &geometry, nil
}
