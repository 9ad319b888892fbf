package ctdf

type Stop struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Type     StopType `json:"type"`

	// ParentStopID links a platform, entrance or boarding area to its station
	ParentStopID *string `json:"parentStopId"`
	HasChildren  bool    `json:"hasChildren"`
}

type StopType string

const (
	StopTypeStop         StopType = "stop"
	StopTypeStation      StopType = "station"
	StopTypeDoor         StopType = "door"
	StopTypeGeneric      StopType = "generic"
	StopTypeBoardingArea StopType = "boardingArea"
)
