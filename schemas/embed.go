// Package schemas embeds the JSON Schema documents shipped with profile-pdf.
package schemas

import _ "embed"

// UserDetails is the JSON Schema for a raw user-details draft.
//
//go:embed user_details.schema.json
var UserDetails string
