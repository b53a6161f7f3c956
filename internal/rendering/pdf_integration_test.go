package rendering

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChromeRenderer_Integration(t *testing.T) {
	if os.Getenv("CHROME_INTEGRATION") == "" {
		t.Skip("Skipping: set CHROME_INTEGRATION=1 to run against a local Chrome")
	}

	r := NewChromeRenderer(20 * time.Second)
	artifact, err := Render(context.Background(), r, sampleDetails(), fixedNow)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(artifact.PDF, []byte("%PDF")), "output should be a PDF")
}

func TestNewChromeRenderer_DefaultTimeout(t *testing.T) {
	require.Equal(t, DefaultRenderTimeout, NewChromeRenderer(0).Timeout)
}
