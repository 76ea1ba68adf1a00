package flights

import (
	"fmt"
	"strings"
	"time"
)

const (
	searchBaseURL      = "https://www.google.com/travel/flights"
	defaultOrigin      = "London"
	defaultDestination = "Dubai"
	defaultLeadDays    = 7
)

// SearchURL builds the external flight-search deep link for f.
// Search parameters win over values from the flight record. A non-blank
// return date produces a round-trip query, otherwise a one-way one.
func SearchURL(f Flight, params SearchParams, now time.Time) string {
	origin := firstNonEmpty(params.Origin, endpointAirport(f.From), endpointCode(f.From), firstLeg(f).FromCode, defaultOrigin)
	destination := firstNonEmpty(params.Destination, endpointAirport(f.To), endpointCode(f.To), firstLeg(f).ToCode, defaultDestination)

	passengers := params.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	departure := params.DepartureDate
	if departure == "" {
		departure = now.AddDate(0, 0, defaultLeadDays).UTC().Format("2006-01-02")
	}

	query := fmt.Sprintf("Flights+to+%s+from+%s+for+%d+adults+on+%s",
		encodeURIComponent(destination), encodeURIComponent(origin), passengers, departure)
	if strings.TrimSpace(params.ReturnDate) != "" {
		query += "+through+" + params.ReturnDate
	}

	return searchBaseURL + "?q=" + query + "&curr=GBP&gl=uk&hl=en"
}

func firstLeg(f Flight) FlightLeg {
	leg, _ := f.primaryLeg()
	return leg
}

func endpointAirport(e *Endpoint) string {
	if e == nil {
		return ""
	}
	return e.Airport
}

func endpointCode(e *Endpoint) string {
	if e == nil {
		return ""
	}
	return e.Code
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ),
// matching what browsers put in the q parameter.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
