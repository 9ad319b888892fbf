package ctdf

import "time"

const DataTypeVersion = 0

type StaticDataset struct {
	DataTypeVersion int    `json:"dataTypeVersion"`
	Timestamp       string `json:"timestamp"`
	AgencyName      string `json:"agencyName"`

	Stops  map[string]*Stop  `json:"stops"`
	Routes map[string]*Route `json:"routes"`
	Trips  map[string]*Trip  `json:"trips"`
}

// EmptyStaticDataset is what consumers see before the first successful import
func EmptyStaticDataset(now time.Time) *StaticDataset {
	return &StaticDataset{
		DataTypeVersion: DataTypeVersion,
		Timestamp:       now.Format(time.RFC3339),
		AgencyName:      "None",
		Stops:           map[string]*Stop{},
		Routes:          map[string]*Route{},
		Trips:           map[string]*Trip{},
	}
}

type RealtimeDataset struct {
	LocalTimestamp string     `json:"localTimestamp"`
	FeedTimestamp  string     `json:"feedTimestamp"`
	Vehicles       []*Vehicle `json:"vehicles"`
}

func EmptyRealtimeDataset(now time.Time) *RealtimeDataset {
	return &RealtimeDataset{
		LocalTimestamp: now.Format(time.RFC3339),
		FeedTimestamp:  now.Format(time.RFC3339),
		Vehicles:       []*Vehicle{},
	}
}
