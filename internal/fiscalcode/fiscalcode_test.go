package fiscalcode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *CadastralTable {
	return NewCadastralTable([]CadastralEntry{
		{Municipality: "Roma", Province: "RM", Code: "H501"},
		{Municipality: "Milano", Province: "MI", Code: "F205"},
		{Municipality: "Torino", Province: "TO", Code: "L219"},
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSurnameCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rossi", "RSS"},
		{"Bianchi", "BNC"},
		{"Verdi", "VRD"},
		{"Rea", "REA"},
		{"Fo", "FOX"},
		{"Wu", "WUX"},
		{"O", "OXX"},
		{"D'Angelo", "DNG"},
		{"de  luca", "DLC"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SurnameCode(tt.in))
		})
	}
}

func TestGivenNameCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mario", "MRA"},
		{"Maria", "MRA"},
		{"Alessandro", "LSN"},
		{"Gianfranco", "GFR"},
		{"Luca", "LCU"},
		{"Al", "LAX"},
		{"Li", "LIX"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, GivenNameCode(tt.in))
		})
	}
}

func TestAccentedLettersAreDropped(t *testing.T) {
	// è is not in A-Z and is removed before classification
	assert.Equal(t, "NCL", GivenNameCode("Nicolè"))
	assert.Equal(t, "NCL", GivenNameCode("Nicol"))
}

func TestDateSexCode(t *testing.T) {
	assert.Equal(t, "85T10", DateSexCode(date(1985, time.December, 10), Male))
	assert.Equal(t, "90H15", DateSexCode(date(1990, time.June, 15), Male))
	assert.Equal(t, "90H55", DateSexCode(date(1990, time.June, 15), Female))
	assert.Equal(t, "00L01", DateSexCode(date(2000, time.July, 1), Male))
	assert.Equal(t, "01A71", DateSexCode(date(1901, time.January, 31), Female))
}

func TestMonthLettersAreNotAlphabetic(t *testing.T) {
	want := []byte{'A', 'B', 'C', 'D', 'E', 'H', 'L', 'M', 'P', 'R', 'S', 'T'}
	for m := 1; m <= 12; m++ {
		code := DateSexCode(date(2001, time.Month(m), 1), Male)
		assert.Equal(t, want[m-1], code[2], "month %d", m)
	}
}

func TestParseSex(t *testing.T) {
	assert.Equal(t, Female, ParseSex("F"))
	assert.Equal(t, Female, ParseSex(" femmina"))
	assert.Equal(t, Male, ParseSex("M"))
	assert.Equal(t, Male, ParseSex("other"))
	assert.Equal(t, Male, ParseSex(""))
}

func TestCheckCharacter(t *testing.T) {
	c, ok := CheckCharacter("RSSMRA85T10A562")
	require.True(t, ok)
	assert.Equal(t, byte('S'), c)

	_, ok = CheckCharacter("RSSMRA85T10A56")
	assert.False(t, ok)

	_, ok = CheckCharacter("RSSMRA85T10A56-")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("RSSMRA85T10A562S"))
	assert.True(t, Validate("rssmra85t10a562s"))
	assert.True(t, Validate("BNCMRA90H55F205N"))

	assert.False(t, Validate(""))
	assert.False(t, Validate("RSSMRA85T10A562"))
	assert.False(t, Validate("RSSMRA85T10A562SX"))
	assert.False(t, Validate("RSSMRA85T10A562T"))
	assert.False(t, Validate("RSSMRA85T10A56 S"))
	assert.False(t, Validate("RSSMRA85T10A5621"))
	assert.False(t, Validate("RSSMRA85T10A562è"))
}

func TestGenerate(t *testing.T) {
	engine := NewEngine(testTable())

	tests := []struct {
		name string
		id   Identity
		want string
	}{
		{
			name: "male born in Rome",
			id:   Identity{"Rossi", "Mario", date(1985, time.December, 10), Male, "Roma", "RM"},
			want: "RSSMRA85T10H501O",
		},
		{
			name: "female born in Milan",
			id:   Identity{"Bianchi", "Maria", date(1990, time.June, 15), Female, "milano", "mi"},
			want: "BNCMRA90H55F205N",
		},
		{
			name: "name with four consonants",
			id:   Identity{"Verdi", "Alessandro", date(2000, time.January, 1), Male, " Torino ", "TO"},
			want: "VRDLSN00A01L219G",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := engine.Generate(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
			assert.True(t, Validate(code))
		})
	}
}

func TestGenerateUnsupported(t *testing.T) {
	engine := NewEngine(testTable())
	born := date(1985, time.December, 10)

	tests := []struct {
		name   string
		id     Identity
		reason error
	}{
		{"blank surname", Identity{"", "Mario", born, Male, "Roma", "RM"}, ErrBlankField},
		{"blank name", Identity{"Rossi", "  ", born, Male, "Roma", "RM"}, ErrBlankField},
		{"blank sex", Identity{"Rossi", "Mario", born, "", "Roma", "RM"}, ErrBlankField},
		{"zero date", Identity{"Rossi", "Mario", time.Time{}, Male, "Roma", "RM"}, ErrBlankField},
		{"blank province", Identity{"Rossi", "Mario", born, Male, "Roma", ""}, ErrBlankField},
		{"unknown municipality", Identity{"Rossi", "Mario", born, Male, "Atlantide", "XX"}, ErrUnknownMunicipality},
		{"wrong province", Identity{"Rossi", "Mario", born, Male, "Roma", "MI"}, ErrUnknownMunicipality},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := engine.Generate(tt.id)
			assert.Empty(t, code)
			assert.ErrorIs(t, err, ErrUnsupported)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}

func TestGenerateWithoutTable(t *testing.T) {
	_, err := NewEngine(nil).Generate(Identity{"Rossi", "Mario", date(1985, time.December, 10), Male, "Roma", "RM"})
	assert.ErrorIs(t, err, ErrUnknownMunicipality)

	_, err = NewEngine(NewCadastralTable(nil)).Generate(Identity{"Rossi", "Mario", date(1985, time.December, 10), Male, "Roma", "RM"})
	assert.ErrorIs(t, err, ErrUnknownMunicipality)
}

func TestGenerateFromText(t *testing.T) {
	engine := NewEngine(testTable())

	code, err := engine.GenerateFromText("Rossi", "Mario", "10/12/1985", "M", "Roma", "RM")
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA85T10H501O", code)

	code, err = engine.GenerateFromText("Verdi", "Alessandro", "1/1/2000", "maschio", "TORINO", "to")
	require.NoError(t, err)
	assert.Equal(t, "VRDLSN00A01L219G", code)

	for _, bad := range []string{"", "31/02/1990", "1990-01-01", "10/13/1985", "10/12/85", "yesterday"} {
		_, err := engine.GenerateFromText("Rossi", "Mario", bad, "M", "Roma", "RM")
		assert.True(t, errors.Is(err, ErrUnsupported), "date %q", bad)
	}

	_, err = engine.GenerateFromText("Rossi", "Mario", "10/12/1985", "", "Roma", "RM")
	assert.ErrorIs(t, err, ErrBlankField)
}

func TestGeneratedCodesValidate(t *testing.T) {
	engine := NewEngine(testTable())
	surnames := []string{"Rossi", "Fo", "Wu", "Esposito", "D'Amico", "Xu"}
	names := []string{"Mario", "Al", "Gianfranco", "Ugo", "Eva"}
	start := date(1930, time.January, 1)
	for i, s := range surnames {
		for j, n := range names {
			born := start.AddDate(i*13, j, i*7+j*3)
			for _, sex := range []Sex{Male, Female} {
				code, err := engine.Generate(Identity{s, n, born, sex, "Milano", "MI"})
				require.NoError(t, err)
				assert.Len(t, code, Length)
				assert.True(t, Validate(code), code)
			}
		}
	}
}
