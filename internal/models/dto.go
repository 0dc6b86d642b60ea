package models

// ===== REQUEST DTOs =====

// RecordMovementRequest DTO para registrar un movimiento en el muelle.
// Fecha, tipo y transportista se validan en el servicio con mensajes propios.
type RecordMovementRequest struct {
	Date          string `json:"date" form:"date"`
	Kind          string `json:"type_mvt" form:"type_mvt" validate:"max=50"`
	Carrier       string `json:"transporteur" form:"transporteur" validate:"max=100"`
	Reference     string `json:"reference" form:"reference" validate:"max=100"`
	Dock          string `json:"quai" form:"quai" validate:"max=50"`
	PlannedTime   string `json:"heure_plan" form:"heure_plan" validate:"max=50"`
	ArrivalTime   string `json:"heure_arr" form:"heure_arr" validate:"max=50"`
	DepartureTime string `json:"heure_dep" form:"heure_dep" validate:"max=50"`
	Comment       string `json:"commentaire" form:"commentaire"`

	EUR  int `json:"palettes_eur" form:"palettes_eur" validate:"gte=0"`
	SHEP int `json:"palettes_shep" form:"palettes_shep" validate:"gte=0"`
	LPR  int `json:"palettes_lpr" form:"palettes_lpr" validate:"gte=0"`
	Lost int `json:"palettes_perdues" form:"palettes_perdues" validate:"gte=0"`

	EURSize  string `json:"taille_eur" form:"taille_eur" validate:"max=20"`
	SHEPSize string `json:"taille_shep" form:"taille_shep" validate:"max=20"`
	LPRSize  string `json:"taille_lpr" form:"taille_lpr" validate:"max=20"`
}

// LoginRequest DTO de inicio de sesión
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=50"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ===== RESPONSE DTOs =====

// RecordedMovement datos del movimiento registrado
type RecordedMovement struct {
	PlanningID     int64   `json:"planning_id"`
	LedgerID       int64   `json:"ledger_id"`
	Ledger         string  `json:"ledger"`
	Weekday        int     `json:"jour"`
	Week           int     `json:"semaine"`
	Total          int     `json:"total"`
	Delay          float64 `json:"retard"`
	DelayStr       string  `json:"retard_str"`
	CarrierCreated bool    `json:"transporteur_cree"`
}

// RecordMovementResponse respuesta del registro de un movimiento
type RecordMovementResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    RecordedMovement `json:"data"`
}

// PlanningView fila del planning con horas en formato HH:MM
type PlanningView struct {
	ID            int64  `json:"id"`
	Weekday       int    `json:"jour"`
	Week          int    `json:"semaine"`
	Date          Date   `json:"date"`
	PlannedTime   string `json:"heure_plan"`
	Kind          string `json:"type_mvt"`
	Reference     string `json:"reference"`
	Carrier       string `json:"transporteur"`
	Comment       string `json:"commentaire"`
	Dock          string `json:"quai"`
	PalletCount   int    `json:"nb_pals"`
	ArrivalTime   string `json:"heure_arr"`
	DepartureTime string `json:"heure_dep"`
	Delay         string `json:"retard"`
}

// LoginResponse respuesta de inicio de sesión
type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Username  string `json:"username"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
