// backend/export/csv.go
package export

import (
	"fmt"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/demandtrends/backend/models"
)

// RecordsCSV encodes the series with a header row taken from the csv tags on
// models.DailyRecord: date,origin,destination,bookings,price.
func RecordsCSV(records []models.DailyRecord) ([]byte, error) {
	if len(records) == 0 {
		// csvutil.Marshal writes nothing for an empty slice; keep the header.
		header, err := csvutil.Header(models.DailyRecord{}, "csv")
		if err != nil {
			return nil, fmt.Errorf("failed to build CSV header: %w", err)
		}
		return []byte(strings.Join(header, ",") + "\n"), nil
	}

	body, err := csvutil.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %d records as CSV: %w", len(records), err)
	}
	return body, nil
}

// FileName suggests a download name such as "SYD-MEL_2024-01-01_2024-01-07.csv".
func FileName(input models.FilterInput) string {
	clean := func(s string) string {
		s = strings.ToUpper(strings.TrimSpace(s))
		return strings.Map(func(r rune) rune {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
				return r
			}
			return '_'
		}, s)
	}
	return fmt.Sprintf("%s-%s_%s_%s.csv", clean(input.Origin), clean(input.Destination), clean(input.StartDate), clean(input.EndDate))
}
