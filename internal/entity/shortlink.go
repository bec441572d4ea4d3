// Package entity defines the entities and errors used in the application.
// It includes the Shortlink struct, which maps a short key to a schedule of
// target URLs, along with the errors shared by the storage and use case layers.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxRedirects is the largest schedule a shortlink can carry, one per hour of the day.
const MaxRedirects = 24

var (
	// ErrShortlinkNotFound is returned when no active shortlink has the requested key.
	ErrShortlinkNotFound = errors.New("shortlink not found")
	// ErrKeyExists is returned when attempting to save a shortlink with a key that is already taken.
	ErrKeyExists = errors.New("shortlink key exists")
	// ErrInvalidRedirects is returned when a shortlink has no redirects or more than MaxRedirects.
	ErrInvalidRedirects = errors.New("invalid number of redirects")
	// ErrCounterNotSeeded is returned when the shortlink id counter has not been created by the bootstrap.
	ErrCounterNotSeeded = errors.New("shortlink id counter is not seeded")
)

// KeyType selects how the key of a new shortlink is produced.
type KeyType string

const (
	// KeyTypeStandard keys are base62 encoded values of the sequential shortlink id.
	KeyTypeStandard KeyType = "standard"
	// KeyTypeUUID keys are random version 4 UUIDs served under the /u/ prefix.
	KeyTypeUUID KeyType = "uuid"
)

// OrDefault returns KeyTypeStandard for an empty key type.
func (kt KeyType) OrDefault() KeyType {
	if kt == "" {
		return KeyTypeStandard
	}
	return kt
}

// Redirect is a target URL active for the hours From <= h < To.
type Redirect struct {
	From int
	To   int
	URL  string
}

// Shortlink represents a short key and the redirect schedule behind it.
type Shortlink struct {
	ID        string     // ID is the storage identifier of the shortlink.
	Key       string     // Key is the short code, unique across all shortlinks.
	KeyType   KeyType    // KeyType is the way Key was produced.
	Redirects []Redirect // Redirects is the hour-of-day schedule of target URLs.
	Visits    int64      // Visits is the number of times the shortlink was resolved.
	CreatedAt time.Time  // CreatedAt is the timestamp when the shortlink was created.
	UpdatedAt time.Time  // UpdatedAt is the timestamp when the shortlink was last updated.
}

// ValidateRedirects checks the size of a redirect schedule.
func ValidateRedirects(redirects []Redirect) error {
	if len(redirects) == 0 || len(redirects) > MaxRedirects {
		return fmt.Errorf("%w: %d", ErrInvalidRedirects, len(redirects))
	}
	return nil
}

// URLAt returns the target URL for the hour of t. When no redirect covers
// that hour the first redirect is used.
func (s *Shortlink) URLAt(t time.Time) (string, error) {
	if err := ValidateRedirects(s.Redirects); err != nil {
		return "", err
	}

	h := t.Hour()
	for _, r := range s.Redirects {
		if h >= r.From && h < r.To {
			return r.URL, nil
		}
	}

	return s.Redirects[0].URL, nil
}

// ShortURL builds the public URL of the shortlink under baseURL.
func (s *Shortlink) ShortURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")

	if s.KeyType.OrDefault() == KeyTypeUUID {
		return fmt.Sprintf("%s/u/%s", baseURL, s.Key)
	}
	return fmt.Sprintf("%s/%s", baseURL, s.Key)
}

// CheckReport summarizes one pass of the redirect checker.
type CheckReport struct {
	Checked     int // Checked is the number of shortlinks inspected.
	Deactivated int // Deactivated is the number of shortlinks removed because a redirect failed.
	Unreachable int // Unreachable is the number of redirect URLs that could not be fetched.
}
