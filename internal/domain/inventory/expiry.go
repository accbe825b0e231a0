package inventory

import (
	"time"
)

// Formatos de fecha usados en la persistencia y en la API.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

const secondsPerDay = 60 * 60 * 24

// IsLeapYear: divisible por 4 y no por 100, o divisible por 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// ValidateExpiryDate acepta solo YYYY-MM-DD con año >= 1900, mes 1-12 y día 1-31.
// Febrero se limita a 28 días salvo en año bisiesto (29). El resto de los meses
// no se contrasta contra su longitud real: "2023-04-31" se considera válida.
func ValidateExpiryDate(s string) bool {
	year, month, day, ok := splitDate(s)
	if !ok {
		return false
	}
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	if month == 2 && (day > 29 || (day == 29 && !IsLeapYear(year))) {
		return false
	}
	return true
}

// DaysToExpiry devuelve los días que faltan hasta la fecha de vencimiento, contados
// entre medianoches: 0 el mismo día, positivo antes y negativo después.
// Devuelve -1 si la fecha no es válida; "<= 0" equivale a vencido o inválido.
func DaysToExpiry(expiry string, now time.Time) int {
	if !ValidateExpiryDate(expiry) {
		return -1
	}
	year, month, day, _ := splitDate(expiry)
	// time.Date normaliza días fuera de rango del mes (2023-04-31 -> 2023-05-01).
	exp := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	seconds := int64(exp.Sub(today) / time.Second)
	return int(seconds / secondsPerDay)
}

// IsExpired es verdadero si la fecha ya pasó, es hoy o no es válida.
func IsExpired(expiry string, now time.Time) bool {
	return DaysToExpiry(expiry, now) <= 0
}

// FormatDate formatea una fecha como YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate interpreta YYYY-MM-DD (medianoche UTC).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDateTime formatea una marca de tiempo como YYYY-MM-DD HH:MM:SS.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ParseDateTime interpreta YYYY-MM-DD HH:MM:SS en UTC.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(DateTimeLayout, s)
}

func splitDate(s string) (year, month, day int, ok bool) {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, false
	}
	if year, ok = atoi(s[0:4]); !ok {
		return 0, 0, 0, false
	}
	if month, ok = atoi(s[5:7]); !ok {
		return 0, 0, 0, false
	}
	if day, ok = atoi(s[8:10]); !ok {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func atoi(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
