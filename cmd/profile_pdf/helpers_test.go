package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/profile-pdf/internal/config"
	"github.com/jonathan/profile-pdf/internal/rendering"
)

// getBinaryPath returns the path to the profile_pdf binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "profile_pdf"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/profile_pdf ./cmd/profile_pdf'", binaryPath)
	}

	return binaryPath
}

// executeCommand runs the CLI in-process with fresh flag values.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// useFileDraft points the draft store at a fresh file and returns its path.
func useFileDraft(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.json")
	t.Setenv("PROFILE_PDF_DRAFT_BACKEND", config.BackendFile)
	t.Setenv("PROFILE_PDF_DRAFT_PATH", path)
	t.Setenv("PROFILE_PDF_LOG_LEVEL", "error")
	return path
}

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

// useFakeRenderer swaps the Chrome renderer for a fake one.
func useFakeRenderer(t *testing.T) *fakeRenderer {
	t.Helper()
	fake := &fakeRenderer{}
	prev := rendererFactory
	rendererFactory = func(*config.Config) rendering.PDFRenderer { return fake }
	t.Cleanup(func() { rendererFactory = prev })
	return fake
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
