package fiscalcode

import "strings"

// Length of a complete fiscal code.
const Length = 16

// oddValues applies to characters in odd 1-based positions.
var oddValues = map[byte]int{
	'0': 1, '1': 0, '2': 5, '3': 7, '4': 9, '5': 13, '6': 15, '7': 17, '8': 19, '9': 21,
	'A': 1, 'B': 0, 'C': 5, 'D': 7, 'E': 9, 'F': 13, 'G': 15, 'H': 17, 'I': 19, 'J': 21,
	'K': 2, 'L': 4, 'M': 18, 'N': 20, 'O': 11, 'P': 3, 'Q': 6, 'R': 8, 'S': 12, 'T': 14,
	'U': 16, 'V': 10, 'W': 22, 'X': 25, 'Y': 24, 'Z': 23,
}

// evenValues applies to characters in even 1-based positions.
var evenValues = map[byte]int{
	'0': 0, '1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'A': 0, 'B': 1, 'C': 2, 'D': 3, 'E': 4, 'F': 5, 'G': 6, 'H': 7, 'I': 8, 'J': 9,
	'K': 10, 'L': 11, 'M': 12, 'N': 13, 'O': 14, 'P': 15, 'Q': 16, 'R': 17, 'S': 18, 'T': 19,
	'U': 20, 'V': 21, 'W': 22, 'X': 23, 'Y': 24, 'Z': 25,
}

// CheckCharacter computes the 16th character from the first 15. It reports
// false if the input is not 15 characters of [0-9A-Z].
func CheckCharacter(first15 string) (byte, bool) {
	if len(first15) != Length-1 {
		return 0, false
	}
	sum := 0
	for i := 0; i < len(first15); i++ {
		table := evenValues
		if i%2 == 0 {
			table = oddValues
		}
		v, ok := table[first15[i]]
		if !ok {
			return 0, false
		}
		sum += v
	}
	return byte('A' + sum%26), true
}

// Validate reports whether code is a 16 character alphanumeric string whose
// check character matches. Lowercase input is accepted.
func Validate(code string) bool {
	if len(code) != Length {
		return false
	}
	code = strings.ToUpper(code)
	if len(code) != Length {
		return false
	}
	check, ok := CheckCharacter(code[:Length-1])
	if !ok {
		return false
	}
	return code[Length-1] == check
}
