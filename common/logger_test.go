package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	req := require.New(t)

	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	l := NewLoggerWithOutput("emargement", &buf)

	l.Log("record %d created", 1)
	l.Warn("notification for %s failed\n", "a@x.com")
	l.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	req.Len(lines, 3)
	req.True(strings.HasSuffix(lines[0], "[emargement] INFO record 1 created"))
	req.True(strings.HasSuffix(lines[1], "[emargement] WARN notification for a@x.com failed"))
	req.True(strings.HasSuffix(lines[2], "[emargement] ERROR boom"))
}
