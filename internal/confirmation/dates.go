package confirmation

import (
	"fmt"
	"time"

	"github.com/robertarktes/visa-appointments/internal/domain"
)

var weekdaysPT = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

var monthsPT = [...]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// LongDate renders d in the long Brazilian Portuguese form,
// e.g. "quarta-feira, 3 de setembro de 2025".
func LongDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysPT[d.Weekday()], d.Day, monthsPT[d.Month], d.Year)
}
