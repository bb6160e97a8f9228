package bar

import "strings"

// Weekday is the closed 7-value set used by happy-hour schedules.
// The string values are what the document store holds, so they never
// change casing.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayByUpper = map[string]Weekday{
	"MONDAY":    Monday,
	"TUESDAY":   Tuesday,
	"WEDNESDAY": Wednesday,
	"THURSDAY":  Thursday,
	"FRIDAY":    Friday,
	"SATURDAY":  Saturday,
	"SUNDAY":    Sunday,
}

func (w Weekday) IsValid() bool {
	_, ok := weekdayByUpper[strings.ToUpper(string(w))]
	return ok
}

// MapDays maps free-form day tokens from the analysis payload onto the
// weekday set. Unrecognized tokens are dropped silently, input order is
// preserved and duplicates are kept; callers must tolerate duplicates.
// The result may legitimately be empty.
func MapDays(tokens []string) []Weekday {
	days := make([]Weekday, 0, len(tokens))
	for _, token := range tokens {
		if day, ok := weekdayByUpper[strings.ToUpper(token)]; ok {
			days = append(days, day)
		}
	}
	return days
}
