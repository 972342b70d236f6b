package fiscalcode

import (
	"fmt"
	"strings"
	"time"
)

// Sex of the person the code is derived for.
type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

// ParseSex treats anything that does not start with "F" as male.
func ParseSex(s string) Sex {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s)), "F") {
		return Female
	}
	return Male
}

// monthLetters maps months 1-12 to their code letter. Not alphabetic.
const monthLetters = "ABCDEHLMPRST"

const femaleDayOffset = 40

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func split(s string) (consonants, vowels []rune) {
	for _, r := range lettersOnly(s) {
		if isVowel(r) {
			vowels = append(vowels, r)
		} else {
			consonants = append(consonants, r)
		}
	}
	return consonants, vowels
}

func pad3(letters []rune) string {
	if len(letters) > 3 {
		letters = letters[:3]
	}
	code := string(letters)
	return code + strings.Repeat("X", 3-len(letters))
}

// SurnameCode returns consonants then vowels, truncated and padded to 3.
func SurnameCode(surname string) string {
	consonants, vowels := split(surname)
	return pad3(append(consonants, vowels...))
}

// GivenNameCode differs from SurnameCode only when the name has four or more
// consonants: the second consonant is skipped.
func GivenNameCode(name string) string {
	consonants, vowels := split(name)
	if len(consonants) >= 4 {
		return string([]rune{consonants[0], consonants[2], consonants[3]})
	}
	return pad3(append(consonants, vowels...))
}

// DateSexCode encodes year, month and day, adding 40 to the day for women.
func DateSexCode(birth time.Time, sex Sex) string {
	day := birth.Day()
	if sex == Female {
		day += femaleDayOffset
	}
	return fmt.Sprintf("%02d%c%02d", birth.Year()%100, monthLetters[birth.Month()-1], day)
}
