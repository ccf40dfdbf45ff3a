package amadeus

// OfferBatch is the decoded shape of the provider's flight-offers response.
// Every field is optional on the wire; the normalizer maps absences to
// defaults instead of failing.
type OfferBatch struct {
	Data         []Offer      `json:"data"`
	Dictionaries Dictionaries `json:"dictionaries"`
}

type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

type Offer struct {
	ID               string            `json:"id"`
	Price            Price             `json:"price"`
	Itineraries      []Itinerary       `json:"itineraries"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

type Price struct {
	Total string `json:"total"`
}

type Itinerary struct {
	Duration string    `json:"duration"` // ISO8601 e.g. PT2H10M
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"` // local time, e.g. 2025-09-10T08:45:00
}

type TravelerPricing struct {
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

type FareDetail struct {
	Cabin string `json:"cabin"`
}
