// Package rendering turns a user-details record into a previewable HTML page
// and a printable A4 PDF.
package rendering

import "fmt"

// TemplateError represents an error executing the profile page template
type TemplateError struct {
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Template, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a PDF printing failure. Stage names the step that
// failed (launch, load, print).
type RenderError struct {
	Stage string
	Cause error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error during %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("render error during %s", e.Stage)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
