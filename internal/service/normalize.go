package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/InonKadosh/travel-server/internal/airlines"
	"github.com/InonKadosh/travel-server/internal/providers"
)

// ErrMalformedOffer marks a provider offer without an itinerary or without
// segments. Such offers are skipped rather than failing the whole search.
var ErrMalformedOffer = errors.New("offer has no itinerary segments")

// Flight is the UI-ready shape of one offer. Field names are part of the
// external contract consumed by the presentation layer.
type Flight struct {
	ID            string          `json:"id"`
	FlightIata    string          `json:"flight_iata"`
	AirlineIata   string          `json:"airline_iata"`
	AirlineName   string          `json:"airline_name"`
	DepIata       string          `json:"dep_iata"`
	ArrIata       string          `json:"arr_iata"`
	DepTime       string          `json:"dep_time"`
	ArrTime       string          `json:"arr_time"`
	Duration      string          `json:"duration"`
	AircraftIcao  string          `json:"aircraft_icao"`
	Status        string          `json:"status"`
	Price         string          `json:"price"`
	Currency      string          `json:"currency"`
	NumberOfStops int             `json:"numberOfStops"`
	DepTerminal   string          `json:"dep_terminal,omitempty"`
	ArrTerminal   string          `json:"arr_terminal,omitempty"`
	Segments      []FlightSegment `json:"segments"`
}

// FlightSegment is one leg of the flattened route.
type FlightSegment struct {
	FlightNumber string `json:"flight_number"`
	AirlineIata  string `json:"airline_iata"`
	AirlineName  string `json:"airline_name"`
	DepIata      string `json:"dep_iata"`
	ArrIata      string `json:"arr_iata"`
	DepTime      string `json:"dep_time"`
	ArrTime      string `json:"arr_time"`
	Duration     string `json:"duration"`
	AircraftIcao string `json:"aircraft_icao"`
	DepTerminal  string `json:"dep_terminal,omitempty"`
	ArrTerminal  string `json:"arr_terminal,omitempty"`
}

// Normalize flattens a raw offer into the outbound flight shape. Only the
// first itinerary is used; round-trip offers are not modeled. The summary
// fields come from the first segment's departure side and the last
// segment's arrival side.
func Normalize(offer providers.Offer) (Flight, error) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return Flight{}, ErrMalformedOffer
	}
	itin := offer.Itineraries[0]
	first := itin.Segments[0]
	last := itin.Segments[len(itin.Segments)-1]

	segments := make([]FlightSegment, 0, len(itin.Segments))
	for _, seg := range itin.Segments {
		segments = append(segments, FlightSegment{
			FlightNumber: seg.CarrierCode + seg.Number,
			AirlineIata:  seg.CarrierCode,
			AirlineName:  airlines.Name(seg.CarrierCode),
			DepIata:      seg.Departure.IataCode,
			ArrIata:      seg.Arrival.IataCode,
			DepTime:      formatClock(seg.Departure.At),
			ArrTime:      formatClock(seg.Arrival.At),
			Duration:     formatDuration(seg.Duration),
			AircraftIcao: aircraftCode(seg.Aircraft.Code),
			DepTerminal:  seg.Departure.Terminal,
			ArrTerminal:  seg.Arrival.Terminal,
		})
	}

	id := offer.ID
	if id == "" {
		id = uuid.NewString()
	}

	return Flight{
		ID:            id,
		FlightIata:    first.CarrierCode + first.Number,
		AirlineIata:   first.CarrierCode,
		AirlineName:   airlines.Name(first.CarrierCode),
		DepIata:       first.Departure.IataCode,
		ArrIata:       last.Arrival.IataCode,
		DepTime:       formatClock(first.Departure.At),
		ArrTime:       formatClock(last.Arrival.At),
		Duration:      formatDuration(itin.Duration),
		AircraftIcao:  aircraftCode(first.Aircraft.Code),
		Status:        "Available", // the search flow carries no live status
		Price:         offer.Price.Total,
		Currency:      offer.Price.Currency,
		NumberOfStops: len(itin.Segments) - 1,
		DepTerminal:   first.Departure.Terminal,
		ArrTerminal:   last.Arrival.Terminal,
		Segments:      segments,
	}, nil
}

func aircraftCode(code string) string {
	if code == "" {
		return "N/A"
	}
	return code
}

// formatClock renders a provider timestamp as a zero-padded 24-hour HH:MM
// label. Amadeus sends local time without an offset; RFC3339 is accepted as
// a fallback. Unparseable input passes through unchanged.
func formatClock(s string) string {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.Format("15:04")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	return s
}

// formatDuration rewrites an ISO-8601 duration token into a human label:
// PT2H5M -> "2h 05m", PT45M -> "45m", PT3H -> "3h". Tokens that carry
// neither unit pass through with the period marker stripped.
func formatDuration(iso string) string {
	s := strings.TrimPrefix(iso, "PT")
	var hours, minutes int
	var hasH, hasM bool
	var num strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			num.WriteRune(r)
			continue
		}
		v, _ := strconv.Atoi(num.String())
		num.Reset()
		switch r {
		case 'H':
			hours, hasH = v, true
		case 'M':
			minutes, hasM = v, true
		}
	}
	switch {
	case hasH && hasM:
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	case hasH:
		return fmt.Sprintf("%dh", hours)
	case hasM:
		return fmt.Sprintf("%dm", minutes)
	default:
		return s
	}
}
