package fiscalcode

import (
	"errors"
	"strconv"
	"strings"
)

var ErrMalformedCode = errors.New("malformed fiscal code")

// omocodeLetters replace digits 0-9 in codes reissued to resolve collisions.
const omocodeLetters = "LMNPQRSTUV"

// numericPositions are the 0-based positions that hold digits in a regular code.
var numericPositions = []int{6, 7, 9, 10, 12, 13, 14}

func restoreDigits(code string) string {
	b := []byte(code)
	for _, i := range numericPositions {
		if j := strings.IndexByte(omocodeLetters, b[i]); j >= 0 {
			b[i] = byte('0' + j)
		}
	}
	return string(b)
}

// Decoded holds the parts of a fiscal code that can be read back. The
// century of the birth year cannot be recovered, so only two digits are kept.
type Decoded struct {
	Code          string `json:"code"`
	SurnameCode   string `json:"surname_code"`
	GivenNameCode string `json:"given_name_code"`
	BirthYear     int    `json:"birth_year_2d"`
	BirthMonth    int    `json:"birth_month"`
	BirthDay      int    `json:"birth_day"`
	Sex           Sex    `json:"sex"`
	Cadastral     string `json:"cadastral_code"`
}

// Decode splits a valid fiscal code into its fields. Codes with a bad check
// character or impossible date fields return ErrMalformedCode. Omocode
// substitutions are reverted; Code keeps the original spelling.
func Decode(code string) (Decoded, error) {
	if !Validate(code) {
		return Decoded{}, ErrMalformedCode
	}
	code = strings.ToUpper(code)
	plain := restoreDigits(code)

	year, err := strconv.Atoi(plain[6:8])
	if err != nil {
		return Decoded{}, ErrMalformedCode
	}
	month := strings.IndexByte(monthLetters, plain[8]) + 1
	if month == 0 {
		return Decoded{}, ErrMalformedCode
	}
	day, err := strconv.Atoi(plain[9:11])
	if err != nil {
		return Decoded{}, ErrMalformedCode
	}
	sex := Male
	if day > femaleDayOffset {
		sex = Female
		day -= femaleDayOffset
	}
	if day < 1 || day > 31 {
		return Decoded{}, ErrMalformedCode
	}
	cadastral := plain[11:15]
	if !IsCadastralCode(cadastral) {
		return Decoded{}, ErrMalformedCode
	}

	return Decoded{
		Code:          code,
		SurnameCode:   code[0:3],
		GivenNameCode: code[3:6],
		BirthYear:     year,
		BirthMonth:    month,
		BirthDay:      day,
		Sex:           sex,
		Cadastral:     cadastral,
	}, nil
}
