package services

import (
	"errors"
	"fmt"
)

// Mensajes de validación mostrados al usuario
const (
	MsgInvalidDate    = "Format de date incorrect (AAAA-MM-JJ)"
	MsgMissingCarrier = "Veuillez sélectionner ou entrer un transporteur"
	MsgNegativeCount  = "Le nombre de palettes ne peut pas être négatif"
	MsgInvalidWeek    = "Numéro de semaine invalide"
	MsgInvalidInput   = "Données invalides"
)

// ErrInvalidCredentials usuario o contraseña incorrectos
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError error de datos de entrada (HTTP 400)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError indica si err (o algún error envuelto) es de validación
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
