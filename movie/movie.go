package movie

import (
	"time"

	"github.com/danrneal/fs-casting-agency/errs"
)

// DateLayout is the wire format for release dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound    = errs.Errorf(errs.EUNPROCESSABLE, "movie: no movie with that id")
	ErrEmptyPage   = errs.Errorf(errs.ENOTFOUND, "movie: page is out of range")
	ErrEmptyPatch  = errs.Errorf(errs.EINVALID, "movie: no recognized fields in payload")
	ErrInvalidDate = errs.Errorf(errs.EINVALID, "movie: release_date must be YYYY-MM-DD")
)

// Movie is a persisted movie together with a compact view of its cast.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate time.Time
	Poster      string
	Actors      []ActorRef
}

// ActorRef is the compact actor reference embedded in movie responses.
type ActorRef struct {
	ID   int64
	Name string
}

// NewMovie carries the fields required to create a movie. ActorNames
// are human-readable cross-references resolved against existing actors.
type NewMovie struct {
	Title       string
	ReleaseDate string
	Poster      string
	ActorNames  []string
}

// Patch is a partial update. A nil field means "not supplied, leave
// unchanged"; a non-nil field overwrites the stored value. A non-nil
// empty ActorNames clears the cast.
type Patch struct {
	Title       *string
	ReleaseDate *string
	Poster      *string
	ActorNames  *[]string
}

// Empty reports whether the patch supplies no recognized field.
func (p Patch) Empty() bool {
	return p.Title == nil && p.ReleaseDate == nil && p.Poster == nil && p.ActorNames == nil
}
