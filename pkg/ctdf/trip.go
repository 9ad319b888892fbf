package ctdf

// Trip deliberately carries no stop times, those are stored per shard and
// loaded on demand.
type Trip struct {
	ID       string  `json:"id"`
	RouteID  string  `json:"routeId"`
	Headsign *string `json:"headsign"`
}
