package gtfs

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var rowValidator = validator.New()

type Schedule struct {
	Agencies  []Agency
	Stops     []Stop
	Routes    []Route
	Trips     []Trip
	StopTimes []StopTime
}

// DecodeSchedule parses the required tables of a GTFS static archive
func DecodeSchedule(body []byte) (*Schedule, error) {
	files, err := UnpackArchive(body)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{}

	if err := decodeTable(AgencyFile, files[AgencyFile], &schedule.Agencies); err != nil {
		return nil, err
	}
	if err := decodeTable(StopsFile, files[StopsFile], &schedule.Stops); err != nil {
		return nil, err
	}
	if err := decodeTable(RoutesFile, files[RoutesFile], &schedule.Routes); err != nil {
		return nil, err
	}
	if err := decodeTable(TripsFile, files[TripsFile], &schedule.Trips); err != nil {
		return nil, err
	}
	if err := decodeTable(StopTimesFile, files[StopTimesFile], &schedule.StopTimes); err != nil {
		return nil, err
	}

	return schedule, nil
}

func decodeTable[T any](fileName string, contents []byte, rows *[]T) error {
	log.Info().Str("file", fileName).Msg("Loading file")

	contents = bytes.TrimPrefix(contents, utf8BOM)

	err := gocsv.UnmarshalCSV(newTableReader(bytes.NewReader(contents)), rows)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		*rows = []T{}
		return nil
	} else if err != nil {
		return fmt.Errorf("parse %s: %w", fileName, err)
	}

	for i := range *rows {
		if err := rowValidator.Struct((*rows)[i]); err != nil {
			return &RowValidationError{File: fileName, Row: i + 1, Err: err}
		}
	}

	log.Debug().Str("file", fileName).Int("rows", len(*rows)).Msg("Parsed file")

	return nil
}

// tableReader trims every field and skips rows that hold nothing but
// whitespace.
type tableReader struct {
	reader *csv.Reader
}

func newTableReader(in io.Reader) *tableReader {
	reader := csv.NewReader(in)
	// Allow us to ignore those naughty records that have missing columns
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return &tableReader{reader: reader}
}

func (t *tableReader) Read() ([]string, error) {
	for {
		record, err := t.reader.Read()
		if err != nil {
			return nil, err
		}

		blank := true
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
			if record[i] != "" {
				blank = false
			}
		}

		if !blank {
			return record, nil
		}
	}
}

func (t *tableReader) ReadAll() ([][]string, error) {
	records := [][]string{}

	for {
		record, err := t.Read()
		if err == io.EOF {
			return records, nil
		} else if err != nil {
			return nil, err
		}

		records = append(records, record)
	}
}
