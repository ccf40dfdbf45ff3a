package travel

// TransportMode is the broad travel category an option belongs to.
type TransportMode string

const (
	ModeAir   TransportMode = "air"
	ModeLand  TransportMode = "land"
	ModeWater TransportMode = "water"
)

// TravelType is the concrete vehicle kind within a mode.
type TravelType string

const (
	TypeFlight TravelType = "flight"
	TypeBus    TravelType = "bus"
	TypeTrain  TravelType = "train"
	TypeFerry  TravelType = "ferry"
	TypeCruise TravelType = "cruise"
)

// TravelOption is the flat, display-ready shape handed to the caller.
// Built once per search response and never mutated afterwards.
type TravelOption struct {
	ID            string        `json:"id"`
	Mode          TransportMode `json:"mode"`
	Type          TravelType    `json:"type"`
	Provider      string        `json:"provider"`
	DepartureTime string        `json:"departureTime"`
	ArrivalTime   string        `json:"arrivalTime"`
	Duration      string        `json:"duration"`
	Price         float64       `json:"price"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	Amenities     []string      `json:"amenities,omitempty"`
	Class         string        `json:"class,omitempty"`
	Stops         int           `json:"stops"`
	FlightNumber  string        `json:"flightNumber"`
}

// SearchRequest is one inbound flight search. Prices come back in USD.
type SearchRequest struct {
	Origin        string `json:"origin" validate:"required"`
	Destination   string `json:"destination" validate:"required"`
	DepartureDate string `json:"departureDate" validate:"required"`
	ReturnDate    string `json:"returnDate,omitempty" validate:"omitempty"`
	Adults        int    `json:"adults" validate:"gte=1"`
	Children      int    `json:"children" validate:"gte=0"`
}
