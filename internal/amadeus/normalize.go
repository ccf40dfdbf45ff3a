package amadeus

import (
	"regexp"
	"strconv"

	"github.com/you/go-travel-search/internal/travel"
)

// Normalize flattens a raw offer batch into travel options. It is pure and
// total: absent or malformed fields degrade to defaults, the provider's
// ordering is preserved, and an empty batch maps to an empty slice.
func Normalize(batch OfferBatch) []travel.TravelOption {
	out := make([]travel.TravelOption, 0, len(batch.Data))
	carriers := batch.Dictionaries.Carriers

	for i, offer := range batch.Data {
		var first, last Segment
		var itin Itinerary
		if len(offer.Itineraries) > 0 {
			itin = offer.Itineraries[0]
			if len(itin.Segments) > 0 {
				first = itin.Segments[0]
				last = itin.Segments[len(itin.Segments)-1]
			}
		}

		carrierCode := first.CarrierCode
		if carrierCode == "" {
			carrierCode = "Unknown"
		}
		provider := carriers[carrierCode]
		if provider == "" {
			provider = carrierCode
		}

		price, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil {
			price = 0
		}

		class := "Economy"
		if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
			if cabin := offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin; cabin != "" {
				class = cabin
			}
		}

		stops := len(itin.Segments) - 1
		if stops < 0 {
			stops = 0
		}

		id := offer.ID
		if id == "" {
			id = strconv.Itoa(i)
		}

		out = append(out, travel.TravelOption{
			ID:            "flight-" + id,
			Mode:          travel.ModeAir,
			Type:          travel.TypeFlight,
			Provider:      provider,
			DepartureTime: clockPart(first.Departure.At),
			ArrivalTime:   clockPart(last.Arrival.At),
			Duration:      FormatDuration(itin.Duration),
			Price:         price,
			Origin:        first.Departure.IATACode,
			Destination:   last.Arrival.IATACode,
			Amenities:     []string{"WiFi Available"},
			Class:         class,
			Stops:         stops,
			FlightNumber:  carrierCode + first.Number,
		})
	}
	return out
}

// clockPart extracts HH:MM out of an ISO-8601 local timestamp like
// 2025-09-10T08:45:00. Empty when the timestamp is missing or too short.
func clockPart(at string) string {
	if len(at) < 16 {
		return ""
	}
	return at[11:16]
}

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// FormatDuration rewrites an ISO-8601 duration such as PT2H30M into a
// display string like "2h 30m". Strings that do not match the pattern pass
// through unchanged.
func FormatDuration(d string) string {
	m := durationPattern.FindStringSubmatch(d)
	if m == nil {
		return d
	}
	var s string
	if m[1] != "" {
		s = m[1] + "h"
	}
	if m[2] != "" {
		if s != "" {
			s += " "
		}
		s += m[2] + "m"
	}
	return s
}
