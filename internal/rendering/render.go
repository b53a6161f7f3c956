package rendering

import (
	"context"
	"time"

	"github.com/jonathan/profile-pdf/internal/types"
)

// Artifact is a rendered profile ready for download.
type Artifact struct {
	Filename string
	HTML     string
	PDF      []byte
}

// Render builds, templates and prints d.
func Render(ctx context.Context, r PDFRenderer, d types.UserDetails, now time.Time) (*Artifact, error) {
	html, err := RenderHTML(BuildDocument(d, now))
	if err != nil {
		return nil, err
	}

	pdf, err := r.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename: Filename(d.Name),
		HTML:     html,
		PDF:      pdf,
	}, nil
}
