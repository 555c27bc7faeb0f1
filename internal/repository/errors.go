// Package repository contains the SQL access layer.  Each repository is
// bound to a *sql.DB and exposes context-aware methods returning model
// structs.  Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver error strings.
package repository

import (
	"errors"
	"strings"
	"time"
)

// ErrUserNotFound is returned when no user exists for a session token or id.
// Handlers translate it into a 404 or an empty-state response depending on
// the endpoint.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when the movie cache has no row for an id.
var ErrMovieNotFound = errors.New("movie not found")

// ErrLikeNotFound is returned when no reaction edge exists for a
// (user, movie) pair, i.e. the pair is in the neutral state.
var ErrLikeNotFound = errors.New("like not found")

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure.  The driver does not expose a typed error for it, so the
// message is matched the same way the error code would be.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Timestamps are stored as unix milliseconds and surfaced as time.Time.

func nowMillis() int64 { return time.Now().UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
