package ctdf

// Vehicle IDs are only as stable as the feed makes them, a vehicle without an
// identifier in the feed gets a new random ID on every fetch.
type Vehicle struct {
	ID            string           `json:"id"`
	TripID        *string          `json:"tripId"`
	CurrentStopID *string          `json:"currentStopId"`
	Position      *VehiclePosition `json:"position"`
}

type VehiclePosition struct {
	Location Location `json:"location"`
	Bearing  *float64 `json:"bearing"`
	Speed    *float64 `json:"speed"` // meters per second
}
