// Package airlines maps IATA carrier codes to display names.
package airlines

// names covers the carriers commonly returned on the routes this service
// searches. Codes missing here fall back to the raw code.
var names = map[string]string{
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"BA": "British Airways",
	"LH": "Lufthansa",
	"AF": "Air France",
	"KL": "KLM",
	"IB": "Iberia",
	"AY": "Finnair",
	"LY": "El Al",
	"TK": "Turkish Airlines",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"EY": "Etihad Airways",
	"SU": "Aeroflot",
	"AC": "Air Canada",
	"NH": "ANA",
	"JL": "Japan Airlines",
	"SQ": "Singapore Airlines",
	"CX": "Cathay Pacific",
	"QF": "Qantas",
	"NZ": "Air New Zealand",
	"SK": "SAS",
	"AZ": "ITA Airways",
	"LX": "SWISS",
	"OS": "Austrian Airlines",
	"SN": "Brussels Airlines",
	"TP": "TAP Air Portugal",
	"EI": "Aer Lingus",
	"FR": "Ryanair",
	"U2": "easyJet",
	"WN": "Southwest Airlines",
	"B6": "JetBlue",
	"AS": "Alaska Airlines",
	"F9": "Frontier Airlines",
	"NK": "Spirit Airlines",
	"G4": "Allegiant Air",
	"IZ": "Arkia",
	"H4": "HiSky",
	"6H": "Israir",
}

// Name resolves a carrier code to its display name, returning the code
// itself when the carrier is unknown.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
