package ctdf

type TransportType string

const (
	TransportTypeTram       TransportType = "tram"
	TransportTypeSubway     TransportType = "subway"
	TransportTypeTrain      TransportType = "train"
	TransportTypeBus        TransportType = "bus"
	TransportTypeFerry      TransportType = "ferry"
	TransportTypeCableTram  TransportType = "cableTram"
	TransportTypeCableCar   TransportType = "cableCar"
	TransportTypeFunicular  TransportType = "funicular"
	TransportTypeTrolleybus TransportType = "trolleybus"
	TransportTypeMonorail   TransportType = "monorail"
)
