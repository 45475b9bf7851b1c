// Package holidays supplies public holidays for bulk import into a
// student's blackout calendar.
package holidays

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/yigit/attendance/internal/domain/attendance"
)

// Provider lists the observed public holidays of one region.
type Provider struct {
	region   string
	calendar *cal.BusinessCalendar
}

// NewProvider builds a provider for region. Only "us" is bundled.
func NewProvider(region string) (*Provider, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	calendar := cal.NewBusinessCalendar()

	switch region {
	case "us":
		calendar.AddHoliday(
			us.NewYear,
			us.MlkDay,
			us.PresidentsDay,
			us.MemorialDay,
			us.Juneteenth,
			us.IndependenceDay,
			us.LaborDay,
			us.ColumbusDay,
			us.VeteransDay,
			us.ThanksgivingDay,
			us.ChristmasDay,
		)
	default:
		return nil, fmt.Errorf("unsupported holiday region %q", region)
	}

	return &Provider{region: region, calendar: calendar}, nil
}

// Region returns the normalised region code.
func (p *Provider) Region() string {
	return p.region
}

// Between returns the holidays observed in [from, to], sorted by date.
// Weekend holidays are reported on the weekday they are observed.
func (p *Provider) Between(from, to time.Time) ([]attendance.Holiday, error) {
	from, to = attendance.Day(from), attendance.Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s..%s", attendance.ErrInvalidRange, attendance.FormatDate(from), attendance.FormatDate(to))
	}

	var out []attendance.Holiday
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		_, observed, h := p.calendar.IsHoliday(d)
		if observed && h != nil {
			out = append(out, attendance.Holiday{Date: d, Description: h.Name})
		}
	}
	return out, nil
}
