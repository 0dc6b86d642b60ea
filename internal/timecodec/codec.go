// Package timecodec convierte horas HH:MM a fracción de día y viceversa,
// y calcula retrasos y datos de calendario de los movimientos.
//
// Los valores ya almacenados se generaron con truncamiento, así que el
// ida y vuelta pierde a veces un minuto (00:27 -> 00:26). Se mantiene así.
package timecodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NotArrived hora de llegada centinela: el camión aún no ha llegado
const NotArrived = "Accroche"

// TimeToFraction convierte "HH:MM" en fracción de día.
// Vacío, centinela o formato inválido devuelven 0.
func TimeToFraction(s string) float64 {
	if s == "" || s == NotArrived {
		return 0
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}

	return (float64(hours) + float64(minutes)/60) / 24
}

// FractionToTime convierte una fracción de día en "HH:MM" truncando minutos
func FractionToTime(f float64) string {
	// conversión explícita: evita que el compilador fusione f*24 - hours
	dayHours := float64(f * 24)
	hours := int(dayHours)
	minutes := int((dayHours - float64(hours)) * 60)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// NullableFractionToTime igual que FractionToTime, pero nil devuelve ""
func NullableFractionToTime(f *float64) string {
	if f == nil {
		return ""
	}
	return FractionToTime(*f)
}

// ComputeDelay devuelve el retraso (fracción de día) de la llegada real
// respecto a la planificada. Nunca es negativo.
func ComputeDelay(planned, actual string) float64 {
	if planned == "" || actual == "" || actual == NotArrived {
		return 0
	}

	plan := TimeToFraction(planned)
	arrival := TimeToFraction(actual)
	if arrival > plan {
		return arrival - plan
	}
	return 0
}

// ParseDate valida una fecha estricta AAAA-MM-JJ
func ParseDate(s string) (time.Time, bool) {
	if len(s) != len("2006-01-02") {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WeekdayAndWeek devuelve el día ISO (lunes=1 ... domingo=7) y la semana ISO
func WeekdayAndWeek(t time.Time) (weekday, week int) {
	weekday = int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	_, week = t.ISOWeek()
	return weekday, week
}
