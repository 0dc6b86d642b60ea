package models

// DailyLedgerTotals sumas de un libro (entradas o salidas) para una fecha
type DailyLedgerTotals struct {
	Date Date `json:"date"`
	Good int  `json:"good"`
	Lost int  `json:"lost"`
}

// DailyReportRow fila del reporte "Total palettes"
type DailyReportRow struct {
	Week             int    `json:"semaine"`
	Date             Date   `json:"date"`
	IncomingGood     int    `json:"entree_bons"`
	IncomingLost     int    `json:"entree_perdues"`
	IncomingTotal    int    `json:"entree_total"`
	OutgoingReturned int    `json:"sortie_rendus"`
	OutgoingLost     int    `json:"sortie_perdues"`
	OutgoingTotal    int    `json:"sortie_total"`
	StockOnDock      int    `json:"stock_sur_quai"`
	Unreturned       int    `json:"non_rendus_cumul"`
	ReturnPercentage string `json:"pourcentage_retour"`
}

// ReportFilter filtros aplicados después del cálculo acumulado
type ReportFilter struct {
	Week     *int
	DateFrom *Date
	DateTo   *Date
}

// Matches indica si una fecha pasa el filtro (semana ISO y rango inclusivo)
func (f ReportFilter) Matches(d Date) bool {
	if f.Week != nil {
		if _, week := d.ISOWeek(); week != *f.Week {
			return false
		}
	}
	if f.DateFrom != nil && d.Before(f.DateFrom.Time) {
		return false
	}
	if f.DateTo != nil && d.After(f.DateTo.Time) {
		return false
	}
	return true
}

// PlanningTotals agregados del planning completo
type PlanningTotals struct {
	Count        int
	TotalPallets int
	TotalDelay   float64
}

// LedgerTypeTotals totales por tipo de palé de un libro completo
type LedgerTypeTotals struct {
	EUR  int `json:"eur"`
	SHEP int `json:"shep"`
	LPR  int `json:"lpr"`
	Lost int `json:"perdues"`
}

// Good suma de palés en buen estado
func (t LedgerTypeTotals) Good() int {
	return t.EUR + t.SHEP + t.LPR
}

// CarrierBalance saldo de palés de un transportista.
// Positivo: se le deben palés. Negativo: nos debe palés.
type CarrierBalance struct {
	Carrier      string `json:"transporteur"`
	IncomingGood int    `json:"entree_bons"`
	OutgoingGood int    `json:"sortie_bons"`
	Balance      int    `json:"solde"`
}

// Statistics resumen del tablero
type Statistics struct {
	TotalPallets      int              `json:"total_palettes"`
	PlanningCount     int              `json:"nb_mouvements"`
	TotalDelay        float64          `json:"total_retard"`
	AverageDelay      float64          `json:"average_retard"`
	AverageDelayStr   string           `json:"average_retard_str"`
	Incoming          LedgerTypeTotals `json:"entree"`
	Outgoing          LedgerTypeTotals `json:"sortie"`
	LostRate          string           `json:"taux_perte"`
	OptimizeTransport bool             `json:"optimiser_transport"`
	Recommendation    string           `json:"recommendation"`
	OwedTo            map[string]int   `json:"owed_to"`
	OwedFrom          map[string]int   `json:"owed_from"`
	Balances          []CarrierBalance `json:"soldes"`
}
