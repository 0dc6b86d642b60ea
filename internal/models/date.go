package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout formato de fecha aceptado y almacenado (AAAA-MM-JJ)
const DateLayout = "2006-01-02"

// Date representa una fecha de calendario sin hora.
// Se guarda como texto AAAA-MM-JJ para que funcione igual en PostgreSQL y SQLite.
type Date struct {
	time.Time
}

// NewDate trunca t al día (UTC)
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parsea una fecha AAAA-MM-JJ estricta
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// String devuelve la fecha en formato AAAA-MM-JJ, vacío si no está definida
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Value implementa driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// Scan implementa sql.Scanner. Los drivers devuelven time.Time (lib/pq)
// o texto (SQLite) según el tipo de la columna.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("invalid stored date %q", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// MarshalJSON serializa la fecha como "AAAA-MM-JJ"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON acepta "AAAA-MM-JJ" o cadena vacía
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
