// Package fiscalcode derives and validates Italian fiscal codes
// (codice fiscale).
package fiscalcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupported is returned when a code cannot be derived from the input.
// The reason is wrapped alongside it.
var ErrUnsupported = errors.New("fiscal code unsupported")

var (
	ErrBlankField          = errors.New("required field is blank")
	ErrInvalidBirthDate    = errors.New("invalid birth date")
	ErrUnknownMunicipality = errors.New("cadastral code unknown")
)

// BirthDateLayout is the textual birth date format, dd/mm/yyyy. Single digit
// day and month are accepted.
const BirthDateLayout = "2/1/2006"

// Identity holds the personal data a fiscal code is derived from.
type Identity struct {
	Surname           string
	GivenName         string
	BirthDate         time.Time
	Sex               Sex
	BirthMunicipality string
	BirthProvince     string
}

type Engine struct {
	lookup Lookup
}

func NewEngine(lookup Lookup) *Engine {
	return &Engine{lookup: lookup}
}

func unsupported(reason error, detail string) error {
	return fmt.Errorf("%w: %w: %s", ErrUnsupported, reason, detail)
}

// ParseBirthDate parses a dd/mm/yyyy date, rejecting impossible calendar days.
func ParseBirthDate(text string) (time.Time, error) {
	t, err := time.Parse(BirthDateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, unsupported(ErrInvalidBirthDate, strconv.Quote(text))
	}
	return t, nil
}

// Generate derives the fiscal code. Blank fields and unknown birth places
// yield an error wrapping ErrUnsupported; no partial code is returned.
func (e *Engine) Generate(id Identity) (string, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"surname", id.Surname},
		{"given_name", id.GivenName},
		{"sex", string(id.Sex)},
		{"birth_municipality", id.BirthMunicipality},
		{"birth_province", id.BirthProvince},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return "", unsupported(ErrBlankField, f.name)
		}
	}
	if id.BirthDate.IsZero() {
		return "", unsupported(ErrBlankField, "birth_date")
	}

	if e.lookup == nil {
		return "", unsupported(ErrUnknownMunicipality, "no cadastral table")
	}
	place, ok := e.lookup.Code(id.BirthMunicipality, id.BirthProvince)
	if !ok {
		return "", unsupported(ErrUnknownMunicipality, fmt.Sprintf("%s (%s)", id.BirthMunicipality, id.BirthProvince))
	}

	partial := SurnameCode(id.Surname) + GivenNameCode(id.GivenName) + DateSexCode(id.BirthDate, id.Sex) + place
	check, ok := CheckCharacter(partial)
	if !ok {
		// only reachable with a lookup returning a malformed code
		return "", unsupported(ErrUnknownMunicipality, place)
	}
	return partial + string(check), nil
}

// GenerateFromText is Generate for raw form values.
func (e *Engine) GenerateFromText(surname, givenName, birthDate, sex, municipality, province string) (string, error) {
	if strings.TrimSpace(birthDate) == "" {
		return "", unsupported(ErrBlankField, "birth_date")
	}
	if strings.TrimSpace(sex) == "" {
		return "", unsupported(ErrBlankField, "sex")
	}
	born, err := ParseBirthDate(birthDate)
	if err != nil {
		return "", err
	}
	return e.Generate(Identity{
		Surname:           surname,
		GivenName:         givenName,
		BirthDate:         born,
		Sex:               ParseSex(sex),
		BirthMunicipality: municipality,
		BirthProvince:     province,
	})
}
