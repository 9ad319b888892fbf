package gtfs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	AgencyFile    = "agency.txt"
	StopsFile     = "stops.txt"
	RoutesFile    = "routes.txt"
	TripsFile     = "trips.txt"
	StopTimesFile = "stop_times.txt"
)

// RequiredFiles are the tables every schedule archive must contain, in the
// order they are checked.
var RequiredFiles = []string{AgencyFile, StopsFile, RoutesFile, TripsFile, StopTimesFile}

// UnpackArchive returns the raw contents of the required tables. Nothing is
// parsed until every required table has been found.
func UnpackArchive(body []byte) (map[string][]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("open gtfs archive: %w", err)
	}

	zipFiles := map[string]*zip.File{}
	for _, zipFile := range archive.File {
		zipFiles[zipFile.Name] = zipFile
	}

	for _, fileName := range RequiredFiles {
		if _, exists := zipFiles[fileName]; !exists {
			return nil, &MissingFileError{File: fileName}
		}
	}

	files := map[string][]byte{}
	for fileName, zipFile := range zipFiles {
		if !slices.Contains(RequiredFiles, fileName) {
			log.Debug().Str("file", fileName).Msg("Ignoring gtfs file")
			continue
		}

		contents, err := readZipFile(zipFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fileName, err)
		}

		files[fileName] = contents
	}

	return files, nil
}

func readZipFile(zipFile *zip.File) ([]byte, error) {
	file, err := zipFile.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
