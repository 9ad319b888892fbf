package ctdf

type Route struct {
	ID    string        `json:"id"`
	Name  RouteName     `json:"name"`
	Type  TransportType `json:"type"`
	Color RouteColor    `json:"color"`
}

type RouteName struct {
	Short *string `json:"short"`
	Long  *string `json:"long"`
}

// RouteColor holds hex colours without the leading '#', as published in the feed
type RouteColor struct {
	Generic *string `json:"generic"`
	Text    *string `json:"text"`
}

// DisplayName returns the short name when present, falling back to the long name
func (r *Route) DisplayName() string {
	if r.Name.Short != nil {
		return *r.Name.Short
	}
	if r.Name.Long != nil {
		return *r.Name.Long
	}

	return r.ID
}
