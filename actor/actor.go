package actor

import (
	"time"

	"github.com/danrneal/fs-casting-agency/errs"
)

// DateLayout is the wire format for birthdates and release dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound    = errs.Errorf(errs.EUNPROCESSABLE, "actor: no actor with that id")
	ErrEmptyPage   = errs.Errorf(errs.ENOTFOUND, "actor: page is out of range")
	ErrEmptyPatch  = errs.Errorf(errs.EINVALID, "actor: no recognized fields in payload")
	ErrInvalidDate = errs.Errorf(errs.EINVALID, "actor: birthdate must be YYYY-MM-DD")
)

// Actor is a persisted actor together with a compact view of their movies.
type Actor struct {
	ID        int64
	Name      string
	Birthdate time.Time
	Gender    string
	Image     string
	Movies    []MovieRef
}

// MovieRef is the compact movie reference embedded in actor responses.
type MovieRef struct {
	ID          int64
	Title       string
	ReleaseDate time.Time
}

// NewActor carries the fields required to create an actor. MovieTitles
// are human-readable cross-references resolved against existing movies.
type NewActor struct {
	Name        string
	Birthdate   string
	Gender      string
	Image       string
	MovieTitles []string
}

// Patch is a partial update. A nil field means "not supplied, leave
// unchanged"; a non-nil field overwrites the stored value. A non-nil
// empty MovieTitles clears the filmography.
type Patch struct {
	Name        *string
	Birthdate   *string
	Gender      *string
	Image       *string
	MovieTitles *[]string
}

// Empty reports whether the patch supplies no recognized field.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Birthdate == nil && p.Gender == nil &&
		p.Image == nil && p.MovieTitles == nil
}
