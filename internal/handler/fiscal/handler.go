package fiscal

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/optoclinic-api/internal/middleware"
	"github.com/jwalitptl/optoclinic-api/internal/model"
	"github.com/jwalitptl/optoclinic-api/internal/service/fiscal"
	"github.com/jwalitptl/optoclinic-api/pkg/httputil"
)

type Handler struct {
	service fiscal.FiscalCodeService
}

func NewHandler(service fiscal.FiscalCodeService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	codes := r.Group("/fiscal-codes")
	{
		codes.POST("/generate", h.Generate)
		codes.POST("/validate", h.Validate)
		codes.POST("/check", h.CheckPatient)
		codes.GET("/:code/decode", h.Decode)
	}
	r.GET("/cadastral", middleware.Cache(middleware.DefaultCacheConfig()), h.LookupCadastral)
}

func (h *Handler) Generate(c *gin.Context) {
	var req model.GenerateFiscalCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

// Validate always answers 200; an invalid code is reported in the body.
func (h *Handler) Validate(c *gin.Context) {
	var req model.ValidateFiscalCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	httputil.RespondWithSuccess(c, h.service.Validate(c.Request.Context(), req.Code))
}

func (h *Handler) Decode(c *gin.Context) {
	decoded, err := h.service.Decode(c.Request.Context(), c.Param("code"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, decoded)
}

func (h *Handler) CheckPatient(c *gin.Context) {
	var req model.PatientCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	result, err := h.service.CheckPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) LookupCadastral(c *gin.Context) {
	var query model.CadastralLookupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	entry, err := h.service.LookupCadastral(c.Request.Context(), query.Municipality, query.Province)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entry)
}
