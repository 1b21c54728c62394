// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package schemas

// Status is the publication-state vocabulary shared by the content models
// and the schema serializers. The values come from the IPTC standards that
// https://schema.org/creativeWorkStatus is based on.
type Status string

// Publication states.
const (
	StatusWithheld  Status = "withheld"  // draft, not visible
	StatusUsable    Status = "usable"    // published, visible subject to date checks
	StatusCancelled Status = "cancelled" // retracted, not visible
)

// Statuses lists all valid publication states.
var Statuses = []Status{StatusWithheld, StatusUsable, StatusCancelled}

// Valid reports whether s is a known publication state.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form used in editorial UIs.
func (s Status) Label() string {
	switch s {
	case StatusWithheld:
		return "Draft (withheld)"
	case StatusUsable:
		return "Publish (usable)"
	case StatusCancelled:
		return "Unpublish (cancelled)"
	}
	return string(s)
}
