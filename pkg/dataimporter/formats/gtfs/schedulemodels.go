package gtfs

type Agency struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Language string `csv:"agency_lang"`
	Phone    string `csv:"agency_phone"`
}

type Stop struct {
	ID        string  `csv:"stop_id" validate:"required"`
	Code      string  `csv:"stop_code"`
	Name      string  `csv:"stop_name"`
	Latitude  float64 `csv:"stop_lat"`
	Longitude float64 `csv:"stop_lon"`
	Type      string  `csv:"location_type" validate:"omitempty,oneof=0 1 2 3 4"`
	Parent    string  `csv:"parent_station"`
}

type Route struct {
	ID         string `csv:"route_id" validate:"required"`
	AgencyID   string `csv:"agency_id"`
	ShortName  string `csv:"route_short_name"`
	LongName   string `csv:"route_long_name"`
	Colour     string `csv:"route_color"`
	TextColour string `csv:"route_text_color"`
	// Kept as text so the normalizer can report the original value
	Type string `csv:"route_type"`
}

type Trip struct {
	RouteID   string `csv:"route_id" validate:"required"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id" validate:"required"`
	Headsign  string `csv:"trip_headsign"`
}

type StopTime struct {
	TripID        string `csv:"trip_id" validate:"required"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopSequence  int    `csv:"stop_sequence"`

	// Flexible services may serve a location or location group instead of a
	// stop, and publish a window instead of a departure time
	StopID                   string `csv:"stop_id"`
	LocationID               string `csv:"location_id"`
	LocationGroupID          string `csv:"location_group_id"`
	StartPickupDropOffWindow string `csv:"start_pickup_drop_off_window"`
	EndPickupDropOffWindow   string `csv:"end_pickup_drop_off_window"`
}
