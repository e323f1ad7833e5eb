package source

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"analytics-codegen/internal/ingest"
)

var (
	// ErrUnsupportedURL is returned for URLs that are not Google Sheets
	// documents served over https.
	ErrUnsupportedURL = errors.New("source: unsupported URL")
	// ErrNotFound is returned when the spreadsheet does not exist.
	ErrNotFound = errors.New("source: spreadsheet not found")
	// ErrPermissionDenied is returned when the spreadsheet is not shared
	// for anonymous export.
	ErrPermissionDenied = errors.New("source: permission denied")
)

// Kind tells local files from remote sheets.
type Kind int

const (
	KindFile Kind = iota
	KindGoogleSheet
)

const sheetsHost = "docs.google.com"

// Source is a parsed table location.
type Source struct {
	// Location is the value the user passed.
	Location string
	Kind     Kind
	// Format is the table format. Google Sheets are always exported as CSV.
	Format   ingest.Format

	// Path is set for KindFile.
	Path string

	// SpreadsheetID and GID are set for KindGoogleSheet.
	SpreadsheetID string
	GID           string
}

// ExportURL returns the CSV export URL of a Google Sheet.
func (s Source) ExportURL() string {
	if s.Kind != KindGoogleSheet {
		return ""
	}

	q := url.Values{}
	q.Set("format", "csv")
	q.Set("gid", s.GID)

	return fmt.Sprintf("https://%s/spreadsheets/d/%s/export?%s", sheetsHost, s.SpreadsheetID, q.Encode())
}

func (s Source) String() string {
	if s.Kind == KindGoogleSheet {
		return fmt.Sprintf("sheet %s (gid %s)", s.SpreadsheetID, s.GID)
	}

	return s.Path
}

// Parse classifies location. Anything with a URL scheme must be a Google
// Sheets https URL; everything else is a local path whose extension picks
// the format.
func Parse(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Source{}, errors.New("source: empty location")
	}

	if !strings.Contains(location, "://") {
		format, err := ingest.FormatFromPath(location)
		if err != nil {
			return Source{}, err
		}

		return Source{Location: location, Kind: KindFile, Format: format, Path: location}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrUnsupportedURL, err)
	}

	if u.Scheme != "https" || u.Host != sheetsHost {
		return Source{}, fmt.Errorf("%w: %s", ErrUnsupportedURL, location)
	}

	id, ok := spreadsheetID(u.Path)
	if !ok {
		return Source{}, fmt.Errorf("%w: no spreadsheet id in %s", ErrUnsupportedURL, location)
	}

	return Source{
		Location:      location,
		Kind:          KindGoogleSheet,
		Format:        ingest.FormatCSV,
		SpreadsheetID: id,
		GID:           gid(u),
	}, nil
}

// spreadsheetID extracts <id> from /spreadsheets/d/<id>/...
func spreadsheetID(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "spreadsheets" && parts[i+1] == "d" && parts[i+2] != "" {
			return parts[i+2], true
		}
	}

	return "", false
}

// gid reads the worksheet id from the fragment (#gid=N) or the query.
func gid(u *url.URL) string {
	if frag, err := url.ParseQuery(u.Fragment); err == nil {
		if g := frag.Get("gid"); g != "" {
			return g
		}
	}

	if g := u.Query().Get("gid"); g != "" {
		return g
	}

	return "0"
}
