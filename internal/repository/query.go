package repository

import (
	"fmt"
	"strings"

	"pallet-service/internal/models"
)

// whereBuilder arma cláusulas WHERE con placeholders $n (válidos en lib/pq y SQLite)
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

// add agrega una condición; expr lleva un %d donde va el número del placeholder
func (w *whereBuilder) add(expr string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(expr, len(w.args)))
}

func (w *whereBuilder) addDateRange(from, to *models.Date) {
	if from != nil {
		w.add("date >= $%d", *from)
	}
	if to != nil {
		w.add("date <= $%d", *to)
	}
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// inPlaceholders devuelve "($n, $n+1, ...)" empezando en start
func inPlaceholders(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
