package gtfs

import (
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
)

// DecodeRealtime converts a GTFS-RT FeedMessage into the vehicles it carries.
// Entities without a vehicle position (trip updates, alerts) are skipped.
func DecodeRealtime(body []byte, now time.Time) (*ctdf.RealtimeDataset, error) {
	feed := gtfs.FeedMessage{}

	// Plenty of producers leave out proto2 required fields
	err := proto.UnmarshalOptions{AllowPartial: true}.Unmarshal(body, &feed)
	if err != nil {
		return nil, fmt.Errorf("parse gtfs-rt protobuf: %w", err)
	}

	dataset := &ctdf.RealtimeDataset{
		LocalTimestamp: now.Format(time.RFC3339),
		FeedTimestamp:  time.Unix(int64(feed.GetHeader().GetTimestamp()), 0).UTC().Format(time.RFC3339),
		Vehicles:       []*ctdf.Vehicle{},
	}

	withTripID := 0
	withLocation := 0

	for _, entity := range feed.GetEntity() {
		vehiclePosition := entity.GetVehicle()
		if vehiclePosition == nil {
			continue
		}

		vehicle := &ctdf.Vehicle{
			ID: vehiclePosition.GetVehicle().GetId(),
		}
		if vehicle.ID == "" {
			vehicle.ID = uuid.NewString()
		}

		if tripID := vehiclePosition.GetTrip().GetTripId(); tripID != "" {
			vehicle.TripID = &tripID
			withTripID++
		}

		if stopID := vehiclePosition.GetStopId(); stopID != "" {
			vehicle.CurrentStopID = &stopID
		}

		position := vehiclePosition.GetPosition()
		if position != nil && position.Latitude != nil && position.Longitude != nil {
			vehicle.Position = &ctdf.VehiclePosition{
				Location: ctdf.Location{
					Latitude:  float64(position.GetLatitude()),
					Longitude: float64(position.GetLongitude()),
				},
			}

			if position.Bearing != nil {
				bearing := float64(position.GetBearing())
				vehicle.Position.Bearing = &bearing
			}
			if position.Speed != nil {
				speed := float64(position.GetSpeed())
				vehicle.Position.Speed = &speed
			}

			withLocation++
		}

		dataset.Vehicles = append(dataset.Vehicles, vehicle)
	}

	log.Info().
		Int("vehicles", len(dataset.Vehicles)).
		Int("withTripID", withTripID).
		Int("withLocation", withLocation).
		Msg("Decoded realtime feed")

	return dataset, nil
}
