package gtfs

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/findmybus/findmybus/pkg/shard"
	"github.com/rs/zerolog/log"
)

var stopTypes = map[string]ctdf.StopType{
	"":  ctdf.StopTypeStop,
	"0": ctdf.StopTypeStop,
	"1": ctdf.StopTypeStation,
	"2": ctdf.StopTypeDoor,
	"3": ctdf.StopTypeGeneric,
	"4": ctdf.StopTypeBoardingArea,
}

var transportTypes = []ctdf.TransportType{
	ctdf.TransportTypeTram,
	ctdf.TransportTypeSubway,
	ctdf.TransportTypeTrain,
	ctdf.TransportTypeBus,
	ctdf.TransportTypeFerry,
	ctdf.TransportTypeCableTram,
	ctdf.TransportTypeCableCar,
	ctdf.TransportTypeFunicular,
	ctdf.TransportTypeTrolleybus,
	ctdf.TransportTypeMonorail,
}

// Normalized is the result of converting a parsed schedule. StopTimes is kept
// apart from the static dataset as it is persisted separately.
type Normalized struct {
	Static    *ctdf.StaticDataset
	StopTimes map[string]ctdf.StopTimes
}

// Normalize converts the raw tables into CTDF entities. It does not publish or
// persist anything.
func Normalize(schedule *Schedule, now time.Time) (*Normalized, error) {
	dataset := ctdf.EmptyStaticDataset(now)

	if len(schedule.Agencies) == 0 || strings.TrimSpace(schedule.Agencies[0].Name) == "" {
		return nil, &MissingAgencyNameError{}
	}
	dataset.AgencyName = strings.TrimSpace(schedule.Agencies[0].Name)

	// Stops
	parentIDs := []string{}
	for _, gtfsStop := range schedule.Stops {
		stop := &ctdf.Stop{
			ID:   gtfsStop.ID,
			Name: gtfsStop.Name,
			Location: ctdf.Location{
				Latitude:  gtfsStop.Latitude,
				Longitude: gtfsStop.Longitude,
			},
			Type:         stopTypes[gtfsStop.Type],
			ParentStopID: optional(gtfsStop.Parent),
		}

		if stop.ParentStopID != nil {
			parentIDs = append(parentIDs, *stop.ParentStopID)
		}

		dataset.Stops[stop.ID] = stop
	}

	for _, parentID := range parentIDs {
		parent, exists := dataset.Stops[parentID]
		if !exists {
			log.Debug().Str("stop", parentID).Msg("Parent station is not in stops.txt")
			continue
		}

		parent.HasChildren = true
	}
	log.Info().Int("stops", len(dataset.Stops)).Msg("Converted stops")

	// Routes
	for _, gtfsRoute := range schedule.Routes {
		transportType, err := routeTransportType(gtfsRoute)
		if err != nil {
			return nil, err
		}

		dataset.Routes[gtfsRoute.ID] = &ctdf.Route{
			ID: gtfsRoute.ID,
			Name: ctdf.RouteName{
				Short: optional(gtfsRoute.ShortName),
				Long:  optional(gtfsRoute.LongName),
			},
			Type: transportType,
			Color: ctdf.RouteColor{
				Generic: optional(gtfsRoute.Colour),
				Text:    optional(gtfsRoute.TextColour),
			},
		}
	}
	log.Info().Int("routes", len(dataset.Routes)).Msg("Converted routes")

	// Trips
	for _, gtfsTrip := range schedule.Trips {
		dataset.Trips[gtfsTrip.ID] = &ctdf.Trip{
			ID:       gtfsTrip.ID,
			RouteID:  gtfsTrip.RouteID,
			Headsign: optional(gtfsTrip.Headsign),
		}
	}
	log.Info().Int("trips", len(dataset.Trips)).Msg("Converted trips")

	stopTimes := normalizeStopTimes(schedule.StopTimes)
	log.Info().Int("trips", len(stopTimes)).Msg("Converted stop times")

	return &Normalized{
		Static:    dataset,
		StopTimes: stopTimes,
	}, nil
}

func routeTransportType(route Route) (ctdf.TransportType, error) {
	code, err := strconv.Atoi(route.Type)
	if err != nil || code < 0 || code >= len(transportTypes) {
		return "", &InvalidRouteTypeError{RouteID: route.ID, Code: route.Type}
	}

	return transportTypes[code], nil
}

// normalizeStopTimes orders every row by stop_sequence across the whole table
// and then groups them per trip. Sorting is stable so rows sharing a sequence
// keep their file order.
func normalizeStopTimes(rows []StopTime) map[string]ctdf.StopTimes {
	sorted := make([]StopTime, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StopSequence < sorted[j].StopSequence
	})

	stopTimes := map[string]ctdf.StopTimes{}
	dropped := 0
	withoutStop := 0

	for _, row := range sorted {
		departureTime := row.DepartureTime
		if departureTime == "" {
			departureTime = row.EndPickupDropOffWindow
		}
		if departureTime == "" {
			dropped++
			continue
		}

		// Rows serving a flex location have no stop, the stop is then
		// reported as unavailable like any other dangling reference
		if row.StopID == "" {
			withoutStop++
		}

		stopTimes[row.TripID] = append(stopTimes[row.TripID], ctdf.StopTime{
			StopID:        row.StopID,
			DepartureTime: departureTime,
		})
	}

	if withoutStop > 0 {
		log.Debug().Int("rows", withoutStop).Msg("Kept stop times without a stop_id")
	}
	if dropped > 0 {
		log.Debug().Int("rows", dropped).Msg("Dropped stop times without a departure time")
	}

	return stopTimes
}

// Bucket groups trip stop times by the shard key they are stored under
func Bucket(stopTimes map[string]ctdf.StopTimes) map[string]map[string]ctdf.StopTimes {
	buckets := map[string]map[string]ctdf.StopTimes{}

	for tripID, tripStopTimes := range stopTimes {
		key := shard.Key(tripID)

		if buckets[key] == nil {
			buckets[key] = map[string]ctdf.StopTimes{}
		}
		buckets[key][tripID] = tripStopTimes
	}

	return buckets
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
