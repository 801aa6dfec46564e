package entry

// Entry represents one day's recorded start and end time with the worked hours
// derived from them.
type Entry struct {
	Date  string  `json:"date"`  // YYYY-MM-DD
	Start string  `json:"start"` // HH:MM, 24-hour
	End   string  `json:"end"`   // HH:MM, 24-hour
	Hours float64 `json:"hours"` // one decimal place
}

// MonthKeyLength is the length of a YYYY-MM month key
const MonthKeyLength = 7

// MonthKey returns the YYYY-MM month key of a YYYY-MM-DD date.
// Dates shorter than a month key are returned unchanged.
func MonthKey(date string) string {
	if len(date) < MonthKeyLength {
		return date
	}
	return date[:MonthKeyLength]
}
