// README: Flight records as supplied by the search front-end, plus the user's search parameters.
package flights

// Endpoint is one end of a flight as shown on the card header.
type Endpoint struct {
	Airport string `json:"airport,omitempty"`
	Code    string `json:"code,omitempty"`
	Time    string `json:"time,omitempty"`
}

type Emissions struct {
	// CO2 is the percentage below a typical flight on the route.
	CO2 float64 `json:"co2"`
}

// FlightLeg is one segment of a flight's route.
type FlightLeg struct {
	Airline        string `json:"airline"`
	AirlineLogoURL string `json:"airlineLogoUrl"`
	DepartureTime  string `json:"departureTime"`
	ArrivalTime    string `json:"arrivalTime"`
	FromCode       string `json:"fromCode"`
	ToCode         string `json:"toCode"`
	Duration       string `json:"duration"`
	Stops          string `json:"stops"`
}

// Flight is a display-only record; nothing in this package mutates it.
type Flight struct {
	Airline     string      `json:"airline,omitempty"`
	Provider    string      `json:"provider"`
	Price       float64     `json:"price"`
	Legs        []FlightLeg `json:"legs"`
	From        *Endpoint   `json:"from,omitempty"`
	To          *Endpoint   `json:"to,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Stops       *int        `json:"stops,omitempty"`
	StopDetails string      `json:"stopDetails,omitempty"`
	Emissions   *Emissions  `json:"emissions,omitempty"`
}

func (f Flight) primaryLeg() (FlightLeg, bool) {
	if len(f.Legs) == 0 {
		return FlightLeg{}, false
	}
	return f.Legs[0], true
}

// SearchParams are the values the user originally searched with.
// Zero values mean "not given".
type SearchParams struct {
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departureDate,omitempty"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    int    `json:"passengers,omitempty"`
}
