package stock

import "time"

// Umbrales de vencimiento en días calendario.
const (
	ExpirationWindowDays   = 60 // se incluyen lotes con menos de 60 días restantes
	ExpirationCriticalDays = 15 // menos de 15 días restantes = crítico
)

// Severity clasificación de urgencia de un lote próximo a vencer.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// DaysRemaining devuelve los días calendario entre hoy y la fecha de vencimiento.
// Negativo para lotes ya vencidos. Se compara a medianoche local para que el
// resultado no dependa de la hora del día.
func DaysRemaining(validity, today time.Time) int {
	v := time.Date(validity.Year(), validity.Month(), validity.Day(), 0, 0, 0, 0, today.Location())
	d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return int(v.Sub(d).Hours() / 24)
}

// WithinWindow indica si el lote entra en la lista de próximos a vencer.
func WithinWindow(daysRemaining int) bool {
	return daysRemaining < ExpirationWindowDays
}

// Classify devuelve la severidad de un lote dentro de la ventana.
func Classify(daysRemaining int) Severity {
	if daysRemaining < ExpirationCriticalDays {
		return SeverityCritical
	}
	return SeverityWarning
}
