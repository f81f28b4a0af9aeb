// Package model defines the seven entity kinds the API manages, together with
// the schema descriptor and query spec each repository and handler is
// instantiated with. Constraints live here as data; the generic repository in
// internal/repo enforces them.
package model

import "regexp"

// emailPattern mirrors the loose format check the data model encodes.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
