package flights

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout selects one of the two card presentations.
type Layout string

const (
	LayoutList Layout = "list"
	LayoutGrid Layout = "grid"
)

// ParseLayout maps user input to a Layout; anything but "grid" is list.
func ParseLayout(s string) Layout {
	if strings.EqualFold(strings.TrimSpace(s), string(LayoutGrid)) {
		return LayoutGrid
	}
	return LayoutList
}

const (
	themeRed  = "red"
	themeBlue = "blue"

	emiratesAirline = "Emirates"
	defaultCabin    = "Economy"
	defaultFromCode = "GLA"
	defaultToCode   = "MAA"
)

// ErrNoLegs is returned when a list card is requested for a flight without legs.
var ErrNoLegs = errors.New("flight has no legs")

// LegRow is one leg line of the grid layout.
type LegRow struct {
	Airline        string `json:"airline"`
	AirlineLogoURL string `json:"airlineLogoUrl"`
	DepartureTime  string `json:"departureTime"`
	FromCode       string `json:"fromCode"`
	Duration       string `json:"duration"`
	Stops          string `json:"stops"`
	ArrivalTime    string `json:"arrivalTime"`
	ToCode         string `json:"toCode"`
}

type GridView struct {
	Legs         []LegRow `json:"legs"`
	BookingLabel string   `json:"bookingLabel"`
	Price        string   `json:"price"`
	TotalLabel   string   `json:"totalLabel"`
}

type EndpointView struct {
	Time    string `json:"time"`
	Code    string `json:"code"`
	Airport string `json:"airport"`
}

type ListView struct {
	Theme          string       `json:"theme"`
	Airline        string       `json:"airline"`
	AirlineLogoURL string       `json:"airlineLogoUrl"`
	Cabin          string       `json:"cabin"`
	Price          string       `json:"price"`
	Departure      EndpointView `json:"departure"`
	Arrival        EndpointView `json:"arrival"`
	Duration       string       `json:"duration"`
	Direct         bool         `json:"direct"`
	StopsLabel     string       `json:"stopsLabel"`
	BookingLabel   string       `json:"bookingLabel"`
}

// Card is the resolved view model of a flight card. Exactly one of Grid and
// List is set, according to Layout.
type Card struct {
	Layout        Layout    `json:"layout"`
	SelectURL     string    `json:"selectUrl"`
	EmissionsNote string    `json:"emissionsNote,omitempty"`
	Grid          *GridView `json:"grid,omitempty"`
	List          *ListView `json:"list,omitempty"`
}

// NewCard formats f for the requested layout. now anchors the default
// departure date of the select link.
func NewCard(f Flight, layout Layout, params SearchParams, now time.Time) (Card, error) {
	card := Card{Layout: layout, SelectURL: SearchURL(f, params, now)}

	if layout == LayoutGrid {
		card.Grid = gridView(f)
		if f.Emissions != nil {
			card.EmissionsNote = fmt.Sprintf("This flight emits %s%% less CO2e than a typical flight on this route", formatNumber(f.Emissions.CO2))
		}
		return card, nil
	}

	leg, ok := f.primaryLeg()
	if !ok {
		return Card{}, ErrNoLegs
	}
	card.Layout = LayoutList
	card.List = listView(f, leg)
	if f.Emissions != nil {
		card.EmissionsNote = fmt.Sprintf("This flight emits %s%% less CO2e than typical", formatNumber(f.Emissions.CO2))
	}
	return card, nil
}

func gridView(f Flight) *GridView {
	rows := make([]LegRow, 0, len(f.Legs))
	for _, leg := range f.Legs {
		rows = append(rows, LegRow{
			Airline:        leg.Airline,
			AirlineLogoURL: leg.AirlineLogoURL,
			DepartureTime:  leg.DepartureTime,
			FromCode:       firstNonEmpty(leg.FromCode, defaultFromCode),
			Duration:       leg.Duration,
			Stops:          leg.Stops,
			ArrivalTime:    leg.ArrivalTime,
			ToCode:         firstNonEmpty(leg.ToCode, defaultToCode),
		})
	}
	return &GridView{
		Legs:         rows,
		BookingLabel: fmt.Sprintf("Book with %s from", f.Provider),
		Price:        formatPrice(f.Price),
		TotalLabel:   formatPrice(f.Price*2) + " total",
	}
}

func listView(f Flight, leg FlightLeg) *ListView {
	theme := themeBlue
	if f.Airline == emiratesAirline || leg.Airline == emiratesAirline {
		theme = themeRed
	}

	from := endpointOrZero(f.From)
	to := endpointOrZero(f.To)

	stops := 0
	if f.Stops != nil {
		stops = *f.Stops
	}

	return &ListView{
		Theme:          theme,
		Airline:        leg.Airline,
		AirlineLogoURL: leg.AirlineLogoURL,
		Cabin:          defaultCabin,
		Price:          formatPrice(f.Price),
		Departure: EndpointView{
			Time:    firstNonEmpty(from.Time, leg.DepartureTime),
			Code:    firstNonEmpty(from.Code, leg.FromCode),
			Airport: firstNonEmpty(from.Airport, "Departure"),
		},
		Arrival: EndpointView{
			Time:    firstNonEmpty(to.Time, leg.ArrivalTime),
			Code:    firstNonEmpty(to.Code, leg.ToCode),
			Airport: firstNonEmpty(to.Airport, "Arrival"),
		},
		Duration:     firstNonEmpty(f.Duration, leg.Duration),
		Direct:       stops == 0,
		StopsLabel:   stopsLabel(stops, f.StopDetails),
		BookingLabel: "Book with " + firstNonEmpty(f.Provider, leg.Airline),
	}
}

func stopsLabel(stops int, details string) string {
	switch {
	case stops == 0:
		return "Direct"
	case details != "":
		return details
	case stops > 1:
		return fmt.Sprintf("%d stops", stops)
	default:
		return fmt.Sprintf("%d stop", stops)
	}
}

func endpointOrZero(e *Endpoint) Endpoint {
	if e == nil {
		return Endpoint{}
	}
	return *e
}

func formatPrice(v float64) string {
	return "£" + formatNumber(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
