package models

// Tipos de movimiento conocidos
const (
	KindReception   = "Réception"
	KindReturn      = "Retour"
	KindShipment    = "Expédition"
	KindRestitution = "Restitution"
)

// Dimensiones por defecto de cada tipo de palé
const (
	DefaultEURSize  = "80x120"
	DefaultSHEPSize = "100x120"
	DefaultLPRSize  = "100x120"
)

// IsIncomingKind indica si el tipo de movimiento alimenta el libro de entradas
func IsIncomingKind(kind string) bool {
	return kind == KindReception || kind == KindReturn
}

// Carrier representa la tabla carriers (transporteurs)
type Carrier struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PlannedMovement representa la tabla planning: un registro por evento en el muelle
type PlannedMovement struct {
	ID            int64   `json:"id" db:"id"`
	Weekday       int     `json:"jour" db:"weekday"`
	Week          int     `json:"semaine" db:"week"`
	Date          Date    `json:"date" db:"date"`
	PlannedTime   float64 `json:"heures" db:"planned_time"`
	Kind          string  `json:"type_mvt" db:"kind"`
	Reference     string  `json:"reference" db:"reference"`
	Carrier       string  `json:"transporteur" db:"carrier"`
	Comment       string  `json:"commentaire" db:"comment"`
	Dock          string  `json:"quai" db:"dock"`
	PalletCount   int     `json:"nb_pals" db:"pallet_count"`
	ArrivalTime   string  `json:"heure_arr" db:"arrival_time"`
	DepartureTime string  `json:"heure_dep" db:"departure_time"`
	Delay         float64 `json:"retard" db:"delay"`
}

// PalletCounts conteo por tipo de palé con su dimensión
type PalletCounts struct {
	EUR      int    `json:"eur" db:"eur"`
	EURSize  string `json:"eur_size" db:"eur_size"`
	SHEP     int    `json:"shep" db:"shep"`
	SHEPSize string `json:"shep_size" db:"shep_size"`
	LPR      int    `json:"lpr" db:"lpr"`
	LPRSize  string `json:"lpr_size" db:"lpr_size"`
}

// Good suma de palés en buen estado (sin perdidas)
func (p PalletCounts) Good() int {
	return p.EUR + p.SHEP + p.LPR
}

// IncomingEntry representa la tabla incoming_entries (Entrée)
type IncomingEntry struct {
	ID          int64  `json:"id" db:"id"`
	Kind        string `json:"type" db:"kind"`
	Week        int    `json:"semaine" db:"week"`
	Date        Date   `json:"date" db:"date"`
	Carrier     string `json:"transp" db:"carrier"`
	DocumentRef string `json:"n_bons" db:"document_ref"`
	PalletCounts
	Lost    int    `json:"perdue" db:"lost"`
	Total   int    `json:"total" db:"total"`
	Comment string `json:"commentaire" db:"comment"`
}

// OutgoingEntry representa la tabla outgoing_entries (Sortie).
// Los conteos por tipo son palés devueltos.
type OutgoingEntry struct {
	ID          int64        `json:"id" db:"id"`
	Kind        string       `json:"type" db:"kind"`
	Week        int          `json:"semaine" db:"week"`
	Date        Date         `json:"date" db:"date"`
	Carrier     string       `json:"transp" db:"carrier"`
	DocumentRef string       `json:"n_bons" db:"document_ref"`
	Returned    PalletCounts `json:"rendus"`
	Lost        int          `json:"perdue" db:"lost"`
	Total       int          `json:"total" db:"total"`
	Comment     string       `json:"commentaire" db:"comment"`
}

// PlanningFilter filtros para el listado del planning
type PlanningFilter struct {
	Kind     string
	Carrier  string
	Dock     string
	DateFrom *Date
	DateTo   *Date
	Week     *int
}

// LedgerFilter filtros para los listados de entradas y salidas
type LedgerFilter struct {
	Carrier  string
	DateFrom *Date
	DateTo   *Date
	Week     *int
}
