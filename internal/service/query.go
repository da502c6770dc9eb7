package service

import (
	"fmt"
	"regexp"
	"strings"
)

var iataRe = regexp.MustCompile(`^[A-Z]{3}$`)

// SearchRequest is the inbound POST body.
type SearchRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	Passengers int    `json:"passengers"`
}

// Query is a validated search: uppercase 3-letter codes and at least one
// passenger.
type Query struct {
	Origin      string
	Destination string
	Date        string
	Passengers  int
}

// ValidationError marks client input the service refused before any
// upstream call was made.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// ParseQuery validates and normalizes a search request. Airport codes are
// uppercased, trimmed, and truncated to three characters before matching;
// the passenger count defaults to 1 and is intentionally not bounded above.
func ParseQuery(req SearchRequest) (Query, error) {
	if req.From == "" || req.To == "" || req.Date == "" {
		return Query{}, &ValidationError{msg: "Missing required fields: from, to, or date"}
	}

	origin := normalizeCode(req.From)
	destination := normalizeCode(req.To)
	if !iataRe.MatchString(origin) || !iataRe.MatchString(destination) {
		return Query{}, &ValidationError{msg: fmt.Sprintf(
			"Invalid IATA codes. From: %q, To: %q. IATA codes must be 3 letters.", origin, destination)}
	}

	passengers := req.Passengers
	if passengers < 1 {
		passengers = 1
	}

	return Query{
		Origin:      origin,
		Destination: destination,
		Date:        req.Date,
		Passengers:  passengers,
	}, nil
}

func normalizeCode(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}
