package handlers

import (
	"strconv"
	"strings"

	"pallet-service/internal/models"
	"pallet-service/internal/services"

	"github.com/gin-gonic/gin"
)

// Parámetros de consulta comunes a los listados
const (
	paramCarrier  = "transporteur"
	paramDateFrom = "date_debut"
	paramDateTo   = "date_fin"
	paramWeek     = "semaine"
	paramKind     = "type"
	paramDock     = "quai"
)

func queryDate(c *gin.Context, key string) (*models.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if len(raw) != len(models.DateLayout) {
		return nil, &services.ValidationError{Field: key, Message: services.MsgInvalidDate}
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, &services.ValidationError{Field: key, Message: services.MsgInvalidDate}
	}
	return &d, nil
}

func queryWeek(c *gin.Context) (*int, error) {
	raw := strings.TrimSpace(c.Query(paramWeek))
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &services.ValidationError{Field: paramWeek, Message: services.MsgInvalidWeek}
	}
	return &week, nil
}

// dateRangeAndWeek lee date_debut, date_fin y semaine
func dateRangeAndWeek(c *gin.Context) (from, to *models.Date, week *int, err error) {
	if from, err = queryDate(c, paramDateFrom); err != nil {
		return nil, nil, nil, err
	}
	if to, err = queryDate(c, paramDateTo); err != nil {
		return nil, nil, nil, err
	}
	if week, err = queryWeek(c); err != nil {
		return nil, nil, nil, err
	}
	return from, to, week, nil
}

func parsePlanningFilter(c *gin.Context) (models.PlanningFilter, error) {
	from, to, week, err := dateRangeAndWeek(c)
	if err != nil {
		return models.PlanningFilter{}, err
	}
	return models.PlanningFilter{
		Kind:     strings.TrimSpace(c.Query(paramKind)),
		Carrier:  strings.TrimSpace(c.Query(paramCarrier)),
		Dock:     strings.TrimSpace(c.Query(paramDock)),
		DateFrom: from,
		DateTo:   to,
		Week:     week,
	}, nil
}

func parseLedgerFilter(c *gin.Context) (models.LedgerFilter, error) {
	from, to, week, err := dateRangeAndWeek(c)
	if err != nil {
		return models.LedgerFilter{}, err
	}
	return models.LedgerFilter{
		Carrier:  strings.TrimSpace(c.Query(paramCarrier)),
		DateFrom: from,
		DateTo:   to,
		Week:     week,
	}, nil
}

func parseReportFilter(c *gin.Context) (models.ReportFilter, error) {
	from, to, week, err := dateRangeAndWeek(c)
	if err != nil {
		return models.ReportFilter{}, err
	}
	return models.ReportFilter{DateFrom: from, DateTo: to, Week: week}, nil
}
