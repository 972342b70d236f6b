package optics

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/optoclinic-api/internal/middleware"
	"github.com/jwalitptl/optoclinic-api/internal/model"
	"github.com/jwalitptl/optoclinic-api/internal/service/optics"
	"github.com/jwalitptl/optoclinic-api/pkg/httputil"
)

type Handler struct {
	service optics.OpticsService
}

func NewHandler(service optics.OpticsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/optics")
	{
		group.POST("/keratometry", h.Keratometry)
		group.POST("/contact-lens", h.ContactLens)
		group.GET("/axis/:axis", middleware.Cache(middleware.DefaultCacheConfig()), h.Axis)
	}
}

func (h *Handler) Keratometry(c *gin.Context) {
	var req model.KeratometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	result, err := h.service.Keratometry(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) ContactLens(c *gin.Context) {
	var req model.ContactLensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	httputil.RespondWithSuccess(c, h.service.ContactLens(c.Request.Context(), &req))
}

// Axis accepts any numeric axis; out of range values are clamped.
func (h *Handler) Axis(c *gin.Context) {
	var req model.AxisRequest
	if err := c.ShouldBindUri(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	geometry, err := h.service.Axis(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, geometry)
}
