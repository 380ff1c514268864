// backend/models/booking.go
package models

// FilterInput is the JSON body accepted by /api/analyze and /api/analyze/export.
type FilterInput struct {
	Origin      string `json:"origin"`      // e.g., "SYD"
	Destination string `json:"destination"` // e.g., "MEL"
	StartDate   string `json:"start_date"`  // "YYYY-MM-DD"
	EndDate     string `json:"end_date"`    // "YYYY-MM-DD", inclusive
}

// DailyRecord is one synthetic day of bookings and pricing for a route.
// Field order matters: it is the order used in the prompt JSON and the CSV export.
type DailyRecord struct {
	Date        string  `json:"date" csv:"date"`
	Origin      string  `json:"origin" csv:"origin"`
	Destination string  `json:"destination" csv:"destination"`
	Bookings    int     `json:"bookings" csv:"bookings"`
	Price       float64 `json:"price" csv:"price"`
}

// ResponseEnvelope is the body returned by /api/analyze.
type ResponseEnvelope struct {
	Data     []DailyRecord `json:"data"`
	Insights InsightResult `json:"insights"`
}
