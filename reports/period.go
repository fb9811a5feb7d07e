package reports

import (
	"fmt"
	"time"
)

// Períodos de reporte soportados.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
	PeriodYear  = "año"
)

// PeriodWindow devuelve el rango [desde, hasta) que cubre el período que
// contiene a la fecha base. La semana arranca el domingo.
func PeriodWindow(periodo string, base time.Time) (time.Time, time.Time, error) {
	dia := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())

	switch periodo {
	case PeriodDay:
		return dia, dia.AddDate(0, 0, 1), nil
	case PeriodWeek:
		inicio := dia.AddDate(0, 0, -int(dia.Weekday()))
		return inicio, inicio.AddDate(0, 0, 7), nil
	case PeriodMonth:
		inicio := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		return inicio, inicio.AddDate(0, 1, 0), nil
	case PeriodYear, "anio":
		inicio := time.Date(base.Year(), 1, 1, 0, 0, 0, 0, base.Location())
		return inicio, inicio.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("período inválido: %q", periodo)
	}
}
