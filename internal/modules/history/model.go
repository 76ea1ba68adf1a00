// README: Recent flight searches per caller, kept in a capped Redis list.
package history

import "time"

// DefaultSize is how many searches are kept per caller.
const DefaultSize = 10

// Entry is one recorded flight search.
type Entry struct {
	Query        string    `json:"query"`
	Destination  string    `json:"destination,omitempty"`
	Dates        string    `json:"dates,omitempty"`
	OtherDetails string    `json:"otherDetails,omitempty"`
	SearchedAt   time.Time `json:"searchedAt"`
}
