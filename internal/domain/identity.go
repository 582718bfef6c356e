package domain

import (
	"errors"
	"strings"
	"unicode"
)

const (
	phoneCountryCode  = "998"
	phoneNationalLen  = 9
	passportSerialLen = 2
	passportNumberLen = 7
)

var (
	ErrInvalidPhone          = errors.New("domain: invalid phone number")
	ErrInvalidPassportSerial = errors.New("domain: invalid passport serial")
	ErrInvalidPassportNumber = errors.New("domain: invalid passport number")
)

// phoneDigits возвращает национальную часть номера (до 9 цифр) без кода страны
func phoneDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimPrefix(b.String(), phoneCountryCode)
	if len(digits) > phoneNationalLen {
		digits = digits[:phoneNationalLen]
	}
	return digits
}

// FormatPhone приводит ввод к виду +998 XX XXX XX XX (частичный ввод форматируется частично)
func FormatPhone(raw string) string {
	digits := phoneDigits(raw)
	if digits == "" {
		return ""
	}

	formatted := "+" + phoneCountryCode
	groups := []int{0, 2, 5, 7, 9}
	for i := 0; i < len(groups)-1; i++ {
		from, to := groups[i], groups[i+1]
		if len(digits) <= from {
			break
		}
		if to > len(digits) {
			to = len(digits)
		}
		formatted += " " + digits[from:to]
	}
	return formatted
}

// NormalizePhone возвращает номер в виде, который ожидает бэкенд: +998XXXXXXXXX
func NormalizePhone(raw string) (string, error) {
	digits := phoneDigits(raw)
	if len(digits) != phoneNationalLen {
		return "", ErrInvalidPhone
	}
	return "+" + phoneCountryCode + digits, nil
}

// NormalizePassportSerial серия паспорта: ровно 2 латинские буквы в верхнем регистре
func NormalizePassportSerial(raw string) (string, error) {
	serial := strings.ToUpper(strings.TrimSpace(raw))
	if len(serial) != passportSerialLen {
		return "", ErrInvalidPassportSerial
	}
	for _, r := range serial {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidPassportSerial
		}
	}
	return serial, nil
}

// NormalizePassportNumber номер паспорта: ровно 7 цифр
func NormalizePassportNumber(raw string) (string, error) {
	number := strings.TrimSpace(raw)
	if len(number) != passportNumberLen {
		return "", ErrInvalidPassportNumber
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return "", ErrInvalidPassportNumber
		}
	}
	return number, nil
}
