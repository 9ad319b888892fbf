package gtfs

import "fmt"

type MissingFileError struct {
	File string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("gtfs archive is missing required file %s", e.File)
}

type MissingAgencyNameError struct{}

func (e *MissingAgencyNameError) Error() string {
	return "gtfs agency.txt has no agency_name"
}

type InvalidRouteTypeError struct {
	RouteID string
	Code    string
}

func (e *InvalidRouteTypeError) Error() string {
	return fmt.Sprintf("route %s has unknown route_type %q", e.RouteID, e.Code)
}

// RowValidationError reports a row breaking its table schema. Row counts data
// rows from 1, the header is not included.
type RowValidationError struct {
	File string
	Row  int
	Err  error
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.File, e.Row, e.Err)
}

func (e *RowValidationError) Unwrap() error {
	return e.Err
}
