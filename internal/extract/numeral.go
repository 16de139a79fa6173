package extract

import (
	"strconv"
	"strings"
)

// MoneyRepr reads a token as an amount that may use either "." or "," as
// decimal separator. A separator third from the end marks two decimals;
// every other separator is a thousands separator. It reports false when the
// token is not a number.
//
//	MoneyRepr("1.000,00") // 1000
//	MoneyRepr("10")       // 10
//	MoneyRepr("1.000.00") // 1000
func MoneyRepr(word string) (float64, bool) {
	decimal := ""
	if len(word) > 3 {
		if sep := word[len(word)-3]; sep == '.' || sep == ',' {
			decimal = word[len(word)-2:]
			word = word[:len(word)-3]
		}
	}

	word = strings.NewReplacer(".", "", ",", "").Replace(word)
	if !isDigits(word) {
		return 0, false
	}
	if decimal != "" {
		word += "." + decimal
	}

	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// isDigits reports whether s is non-empty and made of ASCII digits only
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
