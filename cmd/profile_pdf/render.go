package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/config"
	"github.com/jonathan/profile-pdf/internal/observability"
	"github.com/jonathan/profile-pdf/internal/rendering"
	"github.com/jonathan/profile-pdf/internal/validation"
)

var (
	renderInput    string
	renderOutput   string
	renderOutDir   string
	renderHTMLPath string
	renderHTMLOnly bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the profile to PDF and/or HTML",
	Long: `Renders the stored draft, or a record read with --in, to a PDF named after
the user (<name>_profile.pdf) unless --out is given. The record must be valid.
--html also writes the page that was printed; --html-only skips the browser.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to record JSON file (- for stdin); default is the stored draft")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output PDF file")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", ".", "Directory for the PDF when --out is not set")
	renderCmd.Flags().StringVar(&renderHTMLPath, "html", "", "Also write the rendered HTML to this path")
	renderCmd.Flags().BoolVar(&renderHTMLOnly, "html-only", false, "Write only the HTML (requires --html)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderHTMLOnly && renderHTMLPath == "" {
		return fmt.Errorf("--html-only requires --html")
	}

	var (
		artifact *rendering.Artifact
		err      error
	)
	if renderInput != "" {
		artifact, err = renderRecordFile(cmd)
	} else {
		artifact, err = renderStoredDraft(cmd)
	}
	if err != nil {
		return err
	}

	if renderHTMLPath != "" {
		if err := writeOutput(renderHTMLPath, []byte(artifact.HTML)); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "HTML: %s\n", renderHTMLPath)
	}
	if renderHTMLOnly {
		return nil
	}

	pdfPath := renderOutput
	if pdfPath == "" {
		pdfPath = filepath.Join(renderOutDir, artifact.Filename)
	}
	if err := writeOutput(pdfPath, artifact.PDF); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF: %s (%d bytes)\n", pdfPath, len(artifact.PDF))
	return nil
}

func renderRecordFile(cmd *cobra.Command) (*rendering.Artifact, error) {
	content, err := readInput(cmd.InOrStdin(), renderInput)
	if err != nil {
		return nil, err
	}

	result := validation.ValidateJSON(content)
	if !result.Valid {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintValidation(result)
		return nil, fmt.Errorf("validation found %d error(s)", len(result.Errors))
	}

	now := time.Now()
	if renderHTMLOnly {
		html, err := rendering.RenderHTML(rendering.BuildDocument(*result.Data, now))
		if err != nil {
			return nil, err
		}
		return &rendering.Artifact{Filename: rendering.Filename(result.Data.Name), HTML: html}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return rendering.Render(cmd.Context(), rendererFactory(cfg), *result.Data, now)
}

func renderStoredDraft(cmd *cobra.Command) (*rendering.Artifact, error) {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	sess, err := a.session(ctx)
	if err != nil {
		return nil, err
	}

	if renderHTMLOnly {
		html, err := sess.PreviewHTML()
		if err != nil {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintDraft(sess.Draft(), sess.Errors())
			return nil, err
		}
		return &rendering.Artifact{Filename: rendering.Filename(sess.Draft().Name), HTML: html}, nil
	}

	artifact, err := sess.Download(ctx)
	if err != nil {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDraft(sess.Draft(), sess.Errors())
		return nil, err
	}
	return artifact, nil
}
