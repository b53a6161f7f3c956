package rendering

import (
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/phone"
	"github.com/jonathan/profile-pdf/internal/types"
)

const (
	// DocumentTitle heads every generated profile.
	DocumentTitle = "Professional Profile"
	// NoDescription stands in for an empty description.
	NoDescription = "No description provided"

	dateLayout = "1/2/2006"
)

// Document is the view model of the printed profile.
type Document struct {
	ID          string
	Title       string
	Name        string
	Email       string
	Phone       string       // calling code and number, e.g. "+44 7911 123456"
	PhoneHref   template.URL // tel: link, empty when the number has no E.164 form
	Position    string
	Description string
	GeneratedOn string
}

// BuildDocument prepares d for rendering. now stamps the footer.
func BuildDocument(d types.UserDetails, now time.Time) Document {
	doc := Document{
		ID:          uuid.NewString(),
		Title:       DocumentTitle,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Position:    d.Position,
		Description: d.Description,
		GeneratedOn: now.Format(dateLayout),
	}

	if c, ok := countries.Lookup(d.CountryCode); ok {
		doc.Phone = c.CallingCode + " " + d.Phone
	}
	if e164, ok := phone.E164(d.Phone, d.CountryCode); ok {
		doc.PhoneHref = template.URL("tel:" + e164)
	}
	if doc.Description == "" {
		doc.Description = NoDescription
	}
	return doc
}
