package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"pallet-service/internal/models"
	"pallet-service/internal/timecodec"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Nombres de las hojas del libro exportado
const (
	SheetPlanning = "Planning"
	SheetIncoming = "Entrée"
	SheetOutgoing = "Sortie"
	SheetTotals   = "Total palettes"
	SheetCarriers = "Transporteurs"
	SheetStats    = "Statistiques"
)

// XLSXContentType tipo MIME del libro exportado
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFilename nombre del fichero para la fecha dada
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("suivi_palettes_%s.xlsx", now.Format("20060102"))
}

// ExportService exporta todos los datos a un libro xlsx
type ExportService interface {
	Workbook(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	movements MovementService
	reports   ReportService
	stats     StatsService
	logger    *zap.Logger
}

// NewExportService crea una nueva instancia del servicio de exportación
func NewExportService(movements MovementService, reports ReportService, stats StatsService, logger *zap.Logger) ExportService {
	return &exportService{
		movements: movements,
		reports:   reports,
		stats:     stats,
		logger:    logger,
	}
}

// sheet contenido de una hoja: cabecera, anchos y filas
type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

func (s *exportService) Workbook(ctx context.Context) (*bytes.Buffer, error) {
	planning, err := s.movements.ListPlanning(ctx, models.PlanningFilter{})
	if err != nil {
		return nil, err
	}
	incoming, err := s.movements.ListIncoming(ctx, models.LedgerFilter{})
	if err != nil {
		return nil, err
	}
	outgoing, err := s.movements.ListOutgoing(ctx, models.LedgerFilter{})
	if err != nil {
		return nil, err
	}
	totals, err := s.reports.DailyReport(ctx, models.ReportFilter{})
	if err != nil {
		return nil, err
	}
	carriers, err := s.movements.ListCarriers(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.Compute(ctx)
	if err != nil {
		return nil, err
	}

	sheets := []sheet{
		planningSheet(planning),
		incomingSheet(incoming),
		outgoingSheet(outgoing),
		totalsSheet(totals),
		carriersSheet(carriers),
		statsSheet(stats),
	}

	buf, err := writeWorkbook(sheets)
	if err != nil {
		s.logger.Error("❌ Error generando export xlsx", zap.Error(err))
		return nil, err
	}

	s.logger.Info("📤 Export xlsx generado",
		zap.Int("planning", len(planning)),
		zap.Int("entree", len(incoming)),
		zap.Int("sortie", len(outgoing)),
		zap.Int("bytes", buf.Len()))
	return buf, nil
}

func writeWorkbook(sheets []sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		if err := writeSheet(f, sh, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	return &buf, nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	for col, header := range sh.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh.name, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh.name, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, width := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, col, col, width); err != nil {
			return err
		}
	}

	for r, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	// Congelar cabecera
	return f.SetPanes(sh.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func planningSheet(rows []models.PlanningView) sheet {
	sh := sheet{
		name: SheetPlanning,
		headers: []string{"Jour", "Semaine", "Date", "Heure plan", "Type", "Référence", "Transporteur",
			"Commentaire", "Quai", "Nb palettes", "Heure arrivée", "Heure départ", "Retard"},
		widths: []float64{8, 10, 12, 12, 14, 16, 18, 30, 8, 12, 14, 14, 10},
	}
	for _, p := range rows {
		sh.rows = append(sh.rows, []interface{}{
			p.Weekday, p.Week, p.Date.String(), p.PlannedTime, p.Kind, p.Reference, p.Carrier,
			p.Comment, p.Dock, p.PalletCount, p.ArrivalTime, p.DepartureTime, p.Delay,
		})
	}
	return sh
}

var ledgerWidths = []float64{14, 10, 12, 18, 16, 8, 10, 8, 10, 8, 10, 10, 8, 30}

func incomingSheet(entries []models.IncomingEntry) sheet {
	sh := sheet{
		name: SheetIncoming,
		headers: []string{"Type", "Semaine", "Date", "Transporteur", "N° document", "EUR", "Taille EUR",
			"SHEP", "Taille SHEP", "LPR", "Taille LPR", "Perdues", "Total", "Commentaire"},
		widths: ledgerWidths,
	}
	for _, e := range entries {
		sh.rows = append(sh.rows, []interface{}{
			e.Kind, e.Week, e.Date.String(), e.Carrier, e.DocumentRef, e.EUR, e.EURSize,
			e.SHEP, e.SHEPSize, e.LPR, e.LPRSize, e.Lost, e.Total, e.Comment,
		})
	}
	return sh
}

func outgoingSheet(entries []models.OutgoingEntry) sheet {
	sh := sheet{
		name: SheetOutgoing,
		headers: []string{"Type", "Semaine", "Date", "Transporteur", "N° document", "EUR rendues", "Taille EUR",
			"SHEP rendues", "Taille SHEP", "LPR rendues", "Taille LPR", "Perdues", "Total", "Commentaire"},
		widths: ledgerWidths,
	}
	for _, e := range entries {
		r := e.Returned
		sh.rows = append(sh.rows, []interface{}{
			e.Kind, e.Week, e.Date.String(), e.Carrier, e.DocumentRef, r.EUR, r.EURSize,
			r.SHEP, r.SHEPSize, r.LPR, r.LPRSize, e.Lost, e.Total, e.Comment,
		})
	}
	return sh
}

func totalsSheet(rows []models.DailyReportRow) sheet {
	sh := sheet{
		name: SheetTotals,
		headers: []string{"Semaine", "Date", "Entrée bonnes", "Entrée perdues", "Entrée total",
			"Sortie rendues", "Sortie perdues", "Sortie total", "Stock sur quai", "Non rendues (cumul)", "% retour"},
		widths: []float64{10, 12, 14, 14, 12, 14, 14, 12, 14, 18, 10},
	}
	for _, r := range rows {
		sh.rows = append(sh.rows, []interface{}{
			r.Week, r.Date.String(), r.IncomingGood, r.IncomingLost, r.IncomingTotal,
			r.OutgoingReturned, r.OutgoingLost, r.OutgoingTotal, r.StockOnDock, r.Unreturned, r.ReturnPercentage,
		})
	}
	return sh
}

func carriersSheet(names []string) sheet {
	sh := sheet{name: SheetCarriers, headers: []string{"Transporteur"}, widths: []float64{24}}
	for _, n := range names {
		sh.rows = append(sh.rows, []interface{}{n})
	}
	return sh
}

func statsSheet(stats *models.Statistics) sheet {
	sh := sheet{name: SheetStats, headers: []string{"Indicateur", "Valeur"}, widths: []float64{32, 24}}
	add := func(label string, value interface{}) {
		sh.rows = append(sh.rows, []interface{}{label, value})
	}

	add("Total palettes", stats.TotalPallets)
	add("Nombre de mouvements", stats.PlanningCount)
	add("Retard total", timecodec.FractionToTime(stats.TotalDelay))
	add("Retard moyen", stats.AverageDelayStr)
	add("Entrée EUR", stats.Incoming.EUR)
	add("Entrée SHEP", stats.Incoming.SHEP)
	add("Entrée LPR", stats.Incoming.LPR)
	add("Entrée perdues", stats.Incoming.Lost)
	add("Sortie EUR", stats.Outgoing.EUR)
	add("Sortie SHEP", stats.Outgoing.SHEP)
	add("Sortie LPR", stats.Outgoing.LPR)
	add("Sortie perdues", stats.Outgoing.Lost)
	add("Taux de perte", stats.LostRate)
	add("Recommandation", stats.Recommendation)

	owed := make([]string, 0, len(stats.OwedTo))
	for c := range stats.OwedTo {
		owed = append(owed, c)
	}
	sort.Strings(owed)
	for _, c := range owed {
		add("Dû à "+c, stats.OwedTo[c])
	}

	owing := make([]string, 0, len(stats.OwedFrom))
	for c := range stats.OwedFrom {
		owing = append(owing, c)
	}
	sort.Strings(owing)
	for _, c := range owing {
		add("Dû par "+c, stats.OwedFrom[c])
	}
	return sh
}
