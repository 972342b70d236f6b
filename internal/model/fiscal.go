package model

import "github.com/jwalitptl/optoclinic-api/internal/fiscalcode"

// GenerateFiscalCodeRequest carries the raw personal data from the patient
// form. Blank fields are not rejected here: the engine reports them as
// unsupported input.
type GenerateFiscalCodeRequest struct {
	Surname           string `json:"surname" binding:"max=100"`
	GivenName         string `json:"given_name" binding:"max=100"`
	BirthDate         string `json:"birth_date" binding:"max=32"`
	Sex               string `json:"sex" binding:"max=16"`
	BirthMunicipality string `json:"birth_municipality" binding:"max=100"`
	BirthProvince     string `json:"birth_province" binding:"max=8"`
}

type FiscalCodeResult struct {
	FiscalCode string `json:"fiscal_code"`
	Cached     bool   `json:"cached"`
}

type ValidateFiscalCodeRequest struct {
	Code string `json:"code" binding:"max=64"`
}

type ValidationResult struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

type DecodedFiscalCode struct {
	fiscalcode.Decoded
	BirthPlace *fiscalcode.CadastralEntry `json:"birth_place,omitempty"`
}

// PatientCheckRequest compares a stored fiscal code with the one derived
// from the patient's personal data.
type PatientCheckRequest struct {
	GenerateFiscalCodeRequest
	FiscalCode string `json:"fiscal_code" binding:"required,fiscalcode"`
}

type PatientCheckResult struct {
	Stored   string `json:"stored"`
	Expected string `json:"expected"`
	Matches  bool   `json:"matches"`
}

type CadastralLookupQuery struct {
	Municipality string `form:"municipality" binding:"required,max=100"`
	Province     string `form:"province" binding:"required,province"`
}
