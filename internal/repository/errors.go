// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors shared by the repositories
// so that handlers can map storage outcomes to HTTP responses without
// string matching.
package repository

import "errors"

// ErrEmailExists is returned when an insert hits the unique index on
// users.email.  Handlers translate it into the duplicate-email response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when no row matches a lookup or a scoped
// mutation.  For media operations the (id, user_id) double match means a
// record owned by someone else is reported exactly like a missing one.
var ErrNotFound = errors.New("not found")
