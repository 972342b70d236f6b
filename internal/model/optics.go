package model

import "github.com/jwalitptl/optoclinic-api/internal/optics"

// KeratometryRequest takes either the corneal radius or its power.
type KeratometryRequest struct {
	RadiusMM *float64 `json:"radius_mm" binding:"required_without=Diopters"`
	Diopters *float64 `json:"diopters" binding:"required_without=RadiusMM"`
}

type KeratometryResult struct {
	RadiusMM float64 `json:"radius_mm"`
	Diopters float64 `json:"diopters"`
}

type ContactLensRequest struct {
	Sphere   float64  `json:"sphere"`
	Cylinder float64  `json:"cylinder"`
	Axis     int      `json:"axis" binding:"tabo_axis"`
	VertexMM *float64 `json:"vertex_mm"`
}

type ContactLensResult struct {
	Spectacle   optics.Rx `json:"spectacle"`
	ContactLens optics.Rx `json:"contact_lens"`
	VertexMM    float64   `json:"vertex_mm"`
}

type AxisRequest struct {
	Axis    float64  `uri:"axis"`
	Radius  *float64 `form:"radius" binding:"omitempty,gt=0"`
	Barb    *float64 `form:"barb" binding:"omitempty,gte=0"`
	Style   string   `form:"style" binding:"omitempty,oneof=back20 open155"`
	CenterX float64  `form:"cx"`
	CenterY float64  `form:"cy"`
}
