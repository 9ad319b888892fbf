package manager

import (
	"errors"

	"github.com/findmybus/findmybus/pkg/config"
)

type DataSet struct {
	Identifier string
	Format     DataSetFormat
	Source     string
}

type DataSetFormat string

const (
	DataSetFormatGTFSSchedule DataSetFormat = "gtfs-schedule"
	DataSetFormatGTFSRealtime DataSetFormat = "gtfs-realtime"
)

const (
	StaticDataSetIdentifier   = "static"
	RealtimeDataSetIdentifier = "realtime"
)

// GetRegisteredDataSets lists the feeds named in the configuration
func GetRegisteredDataSets(cfg *config.Config) []DataSet {
	return []DataSet{
		{
			Identifier: StaticDataSetIdentifier,
			Format:     DataSetFormatGTFSSchedule,
			Source:     cfg.Static.URL,
		},
		{
			Identifier: RealtimeDataSetIdentifier,
			Format:     DataSetFormatGTFSRealtime,
			Source:     cfg.Realtime.URL,
		},
	}
}

func GetDataset(cfg *config.Config, identifier string) (DataSet, error) {
	for _, dataset := range GetRegisteredDataSets(cfg) {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return DataSet{}, errors.New("Dataset could not be found")
}
