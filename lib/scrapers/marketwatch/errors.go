package marketwatch

import (
	"fmt"
	"strings"
)

// UnsupportedIndexError is returned when a requested index is not in the
// built-in registry. No network request is made in that case.
type UnsupportedIndexError struct {
	Index string
}

func (e *UnsupportedIndexError) Error() string {
	return fmt.Sprintf(
		"unsupported index %q, please select from: %s",
		e.Index, strings.Join(SupportedIndexes(), ", "),
	)
}

// FetchError is a transport failure or a non-success HTTP status. It is
// deliberately distinct from StructureMismatchError: a FetchError means the
// site was unreachable, not that its layout changed.
type FetchError struct {
	Url    string
	Status int
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s", e.Url, e.Cause.Error())
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Url, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// StructureMismatchError means the page no longer matches the markup shape
// the scraper expects for the named metric. Persistent occurrences are the
// signal that the class patterns need updating.
type StructureMismatchError struct {
	Metric Metric
	Reason string
}

func (e *StructureMismatchError) Error() string {
	return fmt.Sprintf("page structure mismatch for metric %q: %s", e.Metric, e.Reason)
}

// MalformedRowError reports a data row whose visible fragment count does not
// line up with the table header. Rows are never padded or truncated to fit.
type MalformedRowError struct {
	Metric Metric
	Row    int
	Want   int
	Got    int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf(
		"metric %q: row %d has %d fields, header has %d",
		e.Metric, e.Row, e.Got, e.Want,
	)
}
