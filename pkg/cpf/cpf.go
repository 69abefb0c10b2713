package cpf

import "strings"

const Length = 11

type Reason int

const (
	Valid Reason = iota
	WrongLength
	RepeatedDigits
	FirstCheckDigit
	SecondCheckDigit
)

func (r Reason) String() string {
	switch r {
	case Valid:
		return "valid"
	case WrongLength:
		return "wrong_length"
	case RepeatedDigits:
		return "repeated_digits"
	case FirstCheckDigit:
		return "first_check_digit"
	case SecondCheckDigit:
		return "second_check_digit"
	default:
		return "unknown"
	}
}

func Validate(raw string) bool {
	return Check(raw) == Valid
}

// Check runs the same gates as Validate and reports the first one that failed.
func Check(raw string) Reason {
	d := Normalize(raw)

	if len(d) != Length {
		return WrongLength
	}
	if allSame(d) {
		return RepeatedDigits
	}
	if digitAt(d, 9) != checkDigit(d[:9]) {
		return FirstCheckDigit
	}
	// The second sum covers the first check digit, so it only runs once that digit is verified.
	if digitAt(d, 10) != checkDigit(d[:10]) {
		return SecondCheckDigit
	}
	return Valid
}

func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(Length)

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Format renders 11 normalized digits as XXX.XXX.XXX-XX. Any other length is
// returned as the bare normalized digits.
func Format(raw string) string {
	d := Normalize(raw)
	if len(d) != Length {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

func Mask(raw string) string {
	d := Normalize(raw)
	if len(d) != Length {
		return strings.Repeat("*", len(d))
	}
	return d[0:3] + ".***.***-" + d[9:11]
}

// checkDigit weighs digits from len(d)+1 down to 2.
func checkDigit(d string) int {
	weight := len(d) + 1
	sum := 0
	for i := 0; i < len(d); i++ {
		sum += digitAt(d, i) * (weight - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func digitAt(d string, i int) int {
	return int(d[i] - '0')
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
