// Package types provides type definitions for structured data used throughout the profile-pdf system.
package types

// Field names a UserDetails field by its JSON key.
type Field string

// UserDetails fields, in form order.
const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldCountryCode Field = "countryCode"
	FieldPhone       Field = "phone"
	FieldPosition    Field = "position"
	FieldDescription Field = "description"
)

// FieldGeneral keys errors that do not belong to a single field.
const FieldGeneral Field = "general"

// Fields returns the UserDetails fields in form order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldCountryCode, FieldPhone, FieldPosition, FieldDescription}
}

// ParseField converts a JSON key into a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// UserDetails is the record collected by the form. A draft may violate any
// constraint; a normalized record satisfies all of them.
type UserDetails struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

// Get returns the value of field. Unknown fields read as empty.
func (u UserDetails) Get(field Field) string {
	switch field {
	case FieldName:
		return u.Name
	case FieldEmail:
		return u.Email
	case FieldCountryCode:
		return u.CountryCode
	case FieldPhone:
		return u.Phone
	case FieldPosition:
		return u.Position
	case FieldDescription:
		return u.Description
	default:
		return ""
	}
}

// With returns a copy of u with field set to value. The receiver is not modified.
func (u UserDetails) With(field Field, value string) UserDetails {
	switch field {
	case FieldName:
		u.Name = value
	case FieldEmail:
		u.Email = value
	case FieldCountryCode:
		u.CountryCode = value
	case FieldPhone:
		u.Phone = value
	case FieldPosition:
		u.Position = value
	case FieldDescription:
		u.Description = value
	}
	return u
}

// Map returns the record as the flat string-keyed object used for persistence.
func (u UserDetails) Map() map[string]string {
	m := make(map[string]string, len(Fields()))
	for _, f := range Fields() {
		m[string(f)] = u.Get(f)
	}
	return m
}

// FromMap builds a draft from a decoded JSON object. Missing keys and
// non-string values read as empty.
func FromMap(m map[string]any) UserDetails {
	var u UserDetails
	for _, f := range Fields() {
		if s, ok := m[string(f)].(string); ok {
			u = u.With(f, s)
		}
	}
	return u
}
