package fiscal

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/optoclinic-api/internal/fiscalcode"
	"github.com/jwalitptl/optoclinic-api/internal/model"
	"github.com/jwalitptl/optoclinic-api/pkg/errors"
	"github.com/jwalitptl/optoclinic-api/pkg/logger"
	"github.com/jwalitptl/optoclinic-api/pkg/metrics"
	"github.com/jwalitptl/optoclinic-api/pkg/reqctx"
)

// MessageInsufficientData is shown to the user when no code can be derived.
const MessageInsufficientData = "insufficient data, please verify"

// Places is the cadastral table as the service needs it.
type Places interface {
	fiscalcode.Lookup
	Municipality(code string) (fiscalcode.CadastralEntry, bool)
	Len() int
}

type FiscalCodeService interface {
	Generate(ctx context.Context, req *model.GenerateFiscalCodeRequest) (*model.FiscalCodeResult, error)
	Validate(ctx context.Context, code string) *model.ValidationResult
	Decode(ctx context.Context, code string) (*model.DecodedFiscalCode, error)
	CheckPatient(ctx context.Context, req *model.PatientCheckRequest) (*model.PatientCheckResult, error)
	LookupCadastral(ctx context.Context, municipality, province string) (*fiscalcode.CadastralEntry, error)
	CadastralEntries() int
}

type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

type Service struct {
	engine  *fiscalcode.Engine
	places  Places
	cache   *cache.Cache
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewService(places Places, cacheCfg CacheConfig, m *metrics.Metrics, log *logger.Logger) *Service {
	m.CadastralEntries.Set(float64(places.Len()))
	return &Service{
		engine:  fiscalcode.NewEngine(places),
		places:  places,
		cache:   cache.New(cacheCfg.TTL, cacheCfg.CleanupInterval),
		metrics: m,
		log:     log.WithFields(map[string]interface{}{"component": "fiscal"}),
	}
}

func cacheKey(req *model.GenerateFiscalCodeRequest) string {
	parts := []string{
		req.Surname, req.GivenName, req.BirthDate, req.Sex, req.BirthMunicipality, req.BirthProvince,
	}
	for i, p := range parts {
		parts[i] = strings.ToUpper(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

func (s *Service) Generate(ctx context.Context, req *model.GenerateFiscalCodeRequest) (*model.FiscalCodeResult, error) {
	key := cacheKey(req)
	if code, found := s.cache.Get(key); found {
		s.metrics.GenerationCacheHits.Inc()
		s.metrics.FiscalCodesGenerated.WithLabelValues("ok").Inc()
		return &model.FiscalCodeResult{FiscalCode: code.(string), Cached: true}, nil
	}

	code, err := s.engine.GenerateFromText(
		req.Surname, req.GivenName, req.BirthDate, req.Sex, req.BirthMunicipality, req.BirthProvince,
	)
	if err != nil {
		if stderrors.Is(err, fiscalcode.ErrUnsupported) {
			s.metrics.FiscalCodesGenerated.WithLabelValues(unsupportedReason(err)).Inc()
			s.log.Info("fiscal code not derivable",
				"request_id", reqctx.RequestID(ctx),
				"reason", unsupportedReason(err),
			)
			return nil, errors.Unprocessable(MessageInsufficientData, err)
		}
		s.metrics.FiscalCodesGenerated.WithLabelValues("error").Inc()
		s.log.Error(err, "fiscal code generation failed", "request_id", reqctx.RequestID(ctx))
		return nil, errors.Internal(err)
	}

	s.cache.Set(key, code, cache.DefaultExpiration)
	s.metrics.FiscalCodesGenerated.WithLabelValues("ok").Inc()
	return &model.FiscalCodeResult{FiscalCode: code}, nil
}

func unsupportedReason(err error) string {
	switch {
	case stderrors.Is(err, fiscalcode.ErrBlankField):
		return "blank_field"
	case stderrors.Is(err, fiscalcode.ErrInvalidBirthDate):
		return "invalid_birth_date"
	case stderrors.Is(err, fiscalcode.ErrUnknownMunicipality):
		return "unknown_municipality"
	}
	return "unsupported"
}

func (s *Service) Validate(ctx context.Context, code string) *model.ValidationResult {
	code = strings.ToUpper(strings.TrimSpace(code))
	valid := fiscalcode.Validate(code)
	if valid {
		s.metrics.FiscalCodesValidated.WithLabelValues("true").Inc()
	} else {
		s.metrics.FiscalCodesValidated.WithLabelValues("false").Inc()
	}
	return &model.ValidationResult{Code: code, Valid: valid}
}

func (s *Service) Decode(ctx context.Context, code string) (*model.DecodedFiscalCode, error) {
	decoded, err := fiscalcode.Decode(strings.TrimSpace(code))
	if err != nil {
		return nil, errors.BadRequest("invalid fiscal code", err)
	}

	out := &model.DecodedFiscalCode{Decoded: decoded}
	if place, ok := s.places.Municipality(decoded.Cadastral); ok {
		out.BirthPlace = &place
	}
	return out, nil
}

// CheckPatient derives the code from the patient's data and compares it to
// the stored one. Omocode variants of the expected code are not accepted.
func (s *Service) CheckPatient(ctx context.Context, req *model.PatientCheckRequest) (*model.PatientCheckResult, error) {
	generated, err := s.Generate(ctx, &req.GenerateFiscalCodeRequest)
	if err != nil {
		return nil, err
	}

	stored := strings.ToUpper(strings.TrimSpace(req.FiscalCode))
	result := &model.PatientCheckResult{
		Stored:   stored,
		Expected: generated.FiscalCode,
		Matches:  stored == generated.FiscalCode,
	}
	if !result.Matches {
		s.log.Warn("stored fiscal code does not match personal data", "request_id", reqctx.RequestID(ctx))
	}
	return result, nil
}

func (s *Service) LookupCadastral(ctx context.Context, municipality, province string) (*fiscalcode.CadastralEntry, error) {
	code, ok := s.places.Code(municipality, province)
	if !ok {
		return nil, errors.NotFound("municipality", fiscalcode.ErrUnknownMunicipality)
	}
	return &fiscalcode.CadastralEntry{
		Municipality: strings.ToUpper(strings.TrimSpace(municipality)),
		Province:     strings.ToUpper(strings.TrimSpace(province)),
		Code:         code,
	}, nil
}

func (s *Service) CadastralEntries() int {
	return s.places.Len()
}
