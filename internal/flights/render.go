package flights

import (
	"fmt"
	"html/template"
	"io"
)

var cardTemplates = template.Must(template.New("grid").Parse(`<article class="flight-card flight-card--grid">
  <div class="flight-card__legs">
{{- range .Grid.Legs}}
    <div class="flight-leg">
      <img src="{{.AirlineLogoURL}}" alt="{{.Airline}} logo" width="24" height="24">
      <div><p class="time">{{.DepartureTime}}</p><p>{{.FromCode}}</p></div>
      <div class="path"><span>{{.Duration}}</span><span class="stops">{{.Stops}}</span></div>
      <div><p class="time">{{.ArrivalTime}}</p><p>{{.ToCode}}</p></div>
    </div>
{{- end}}
  </div>
  <div class="flight-card__price">
    <p>{{.Grid.BookingLabel}}</p>
    <p class="price">{{.Grid.Price}}</p>
    <p>{{.Grid.TotalLabel}}</p>
    <a class="select" href="{{.SelectURL}}" target="_blank" rel="noopener">Select</a>
  </div>
{{- if .EmissionsNote}}
  <footer class="emissions">{{.EmissionsNote}}</footer>
{{- end}}
</article>
`))

func init() {
	template.Must(cardTemplates.New("list").Parse(`<article class="flight-card flight-card--list theme-{{.List.Theme}}">
  <header>
    <img src="{{.List.AirlineLogoURL}}" alt="{{.List.Airline}} logo" width="32" height="32">
    <div><p class="airline">{{.List.Airline}}</p><p>{{.List.Cabin}}</p></div>
    <div class="price"><p>from</p><p>{{.List.Price}}</p></div>
  </header>
  <section class="route">
    <div><p class="time">{{.List.Departure.Time}}</p><p>{{.List.Departure.Code}}</p><p>{{.List.Departure.Airport}}</p></div>
    <div class="path"><p>{{.List.Duration}}</p><p class="stops{{if .List.Direct}} direct{{end}}">{{.List.StopsLabel}}</p></div>
    <div><p class="time">{{.List.Arrival.Time}}</p><p>{{.List.Arrival.Code}}</p><p>{{.List.Arrival.Airport}}</p></div>
  </section>
  <footer>
    <span>{{.List.BookingLabel}}</span>
    <a class="select" href="{{.SelectURL}}" target="_blank" rel="noopener">Select</a>
  </footer>
{{- if .EmissionsNote}}
  <aside class="emissions">{{.EmissionsNote}}</aside>
{{- end}}
</article>
`))
}

// Render writes card as an HTML fragment.
func Render(w io.Writer, card Card) error {
	name := string(LayoutList)
	if card.Layout == LayoutGrid {
		name = string(LayoutGrid)
	}
	if (name == string(LayoutGrid) && card.Grid == nil) || (name == string(LayoutList) && card.List == nil) {
		return fmt.Errorf("flights: card has no %s view", name)
	}
	return cardTemplates.ExecuteTemplate(w, name, card)
}
