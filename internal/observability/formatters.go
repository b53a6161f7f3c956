// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxDescriptionLines bounds the description shown in a draft box
	maxDescriptionLines = 5
)

// Printer handles formatted output for human-readable CLI mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCountries outputs the country registry in display order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCountries(list []countries.Country) {
	for _, c := range list {
		digits := fmt.Sprintf("%d", c.MinLength)
		if c.MaxLength != c.MinLength {
			digits = fmt.Sprintf("%d-%d", c.MinLength, c.MaxLength)
		}
		fmt.Fprintf(p.out, "%s %-2s  %-5s %-16s %5s digits  e.g. %s\n",
			c.Flag, c.Code, c.CallingCode, c.Name, digits, c.Example)
	}
}

// PrintDraft outputs the draft fields, marking those with recorded errors.
func (p *Printer) PrintDraft(d types.UserDetails, errs map[types.Field]types.FieldError) {
	var sb strings.Builder

	country := d.CountryCode
	if c, ok := countries.Lookup(d.CountryCode); ok {
		country = fmt.Sprintf("%s %s (%s)", c.Flag, c.Name, c.CallingCode)
	}

	writeField := func(label string, field types.Field, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(fmt.Sprintf("%-12s %s\n", label+":", value))
		if e, ok := errs[field]; ok {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", e.Message))
		}
	}

	writeField("Name", types.FieldName, d.Name)
	writeField("Email", types.FieldEmail, d.Email)
	writeField("Country", types.FieldCountryCode, country)
	writeField("Phone", types.FieldPhone, d.Phone)
	writeField("Position", types.FieldPosition, d.Position)

	if d.Description != "" {
		sb.WriteString("\nDescription:\n")
		lines := wrap(d.Description, boxWidth-6)
		for i, line := range lines {
			if i == maxDescriptionLines {
				sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-maxDescriptionLines))
				break
			}
			sb.WriteString("  " + line + "\n")
		}
	}
	if e, ok := errs[types.FieldDescription]; ok {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", e.Message))
	}

	p.printBox("PROFILE DRAFT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs a validation result: the normalized record when
// valid, otherwise each field error in field order.
func (p *Printer) PrintValidation(result types.ValidationResult) {
	if result.Valid && result.Data != nil {
		p.PrintDraft(*result.Data, nil)
		p.printBox("VALIDATION", "✓ All fields are valid")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", len(result.Errors)))
	for _, f := range sortedFields(result.Errors) {
		e := result.Errors[f]
		sb.WriteString(fmt.Sprintf("✗ %s: %s\n", f, e.Message))
		sb.WriteString(fmt.Sprintf("  [%s]\n", e.Code))
	}
	p.printBox("VALIDATION FAILED", strings.TrimSuffix(sb.String(), "\n"))
}

// sortedFields orders fields as the form shows them; unknown keys go last.
func sortedFields(errs map[types.Field]types.FieldError) []types.Field {
	order := make(map[types.Field]int)
	for i, f := range types.Fields() {
		order[f] = i
	}
	fields := make([]types.Field, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	slices.SortFunc(fields, func(a, b types.Field) int {
		ia, oka := order[a]
		ib, okb := order[b]
		switch {
		case oka && okb:
			return ia - ib
		case oka:
			return -1
		case okb:
			return 1
		default:
			return strings.Compare(string(a), string(b))
		}
	})
	return fields
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap breaks s into lines of at most width runes at word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
