// backend/simulator/bookings.go
package simulator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gewnthar/demandtrends/backend/models"
)

const dateLayout = "2006-01-02"

// ErrInvalidRange is returned for unparseable dates or an end date before the start date.
var ErrInvalidRange = errors.New("invalid date range")

// RangeError describes which part of the requested range was rejected.
type RangeError struct {
	StartDate string
	EndDate   string
	Reason    string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid date range %q..%q: %s", e.StartDate, e.EndDate, e.Reason)
}

func (e *RangeError) Is(target error) bool { return target == ErrInvalidRange }

// Params are the knobs of the synthetic series. DefaultParams is the contract;
// anything else is for local experiments.
type Params struct {
	Seed             uint32
	MeanBookings     float64
	BasePrice        float64
	PriceStdDev      float64
	WeekendSurcharge float64
}

// DefaultParams returns seed 42, Poisson(150) bookings and a 220 ± N(0, 40) price
// with a 30 weekend surcharge.
func DefaultParams() Params {
	return Params{
		Seed:             42,
		MeanBookings:     150,
		BasePrice:        220,
		PriceStdDev:      40,
		WeekendSurcharge: 30,
	}
}

// Generate builds the synthetic series using DefaultParams.
func Generate(origin, destination, startDate, endDate string) ([]models.DailyRecord, error) {
	return DefaultParams().Generate(origin, destination, startDate, endDate)
}

// Generate builds one record per day in [startDate, endDate]. The sampler is
// re-seeded on every call, so identical inputs always give identical output.
func (p Params) Generate(origin, destination, startDate, endDate string) ([]models.DailyRecord, error) {
	days, err := DaysInRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	sampler := NewSampler(p.Seed)
	// Order is part of the contract: all bookings first, then all perturbations.
	bookings := sampler.Poisson(p.MeanBookings, len(days))
	perturbations := sampler.Normal(0, p.PriceStdDev, len(days))

	records := make([]models.DailyRecord, len(days))
	for i, day := range days {
		records[i] = models.DailyRecord{
			Date:        day.Format(dateLayout),
			Origin:      origin,
			Destination: destination,
			Bookings:    bookings[i],
			Price:       RoundPrice(p.BasePrice + perturbations[i] + p.surcharge(day)),
		}
	}
	return records, nil
}

func (p Params) surcharge(day time.Time) float64 {
	if IsWeekend(day) {
		return p.WeekendSurcharge
	}
	return 0
}

// DaysInRange parses both dates and lists every calendar day between them, inclusive.
func DaysInRange(startDate, endDate string) ([]time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, &RangeError{StartDate: startDate, EndDate: endDate, Reason: "start_date is not a YYYY-MM-DD date"}
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, &RangeError{StartDate: startDate, EndDate: endDate, Reason: "end_date is not a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return nil, &RangeError{StartDate: startDate, EndDate: endDate, Reason: "end_date is before start_date"}
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// IsWeekend reports Saturday or Sunday (ISO weekday index >= 5 with Monday = 0).
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// RoundPrice rounds to cents, ties to even.
func RoundPrice(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
