package reporter

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/pkg/config"
)

func TestWriteTextProducesReadableOutput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()

	var out bytes.Buffer
	path, err := writeText(sampleReport(), cfg, &out)
	if err != nil {
		t.Fatalf("writeText failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if string(written) != out.String() {
		t.Fatal("expected file and stdout output to match for non-terminal writer")
	}

	rendered := out.String()
	for _, want := range []string{
		"IPSpectre Reputation Report",
		"Input: input.xlsx",
		"IPs checked: 2",
		"Failed lookups: 1",
		"1.2.3.4",
		"168.00",
		textNoValue,
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, textANSIBold) {
		t.Fatal("did not expect ANSI codes for buffer output")
	}
}

func TestRenderTextReportEmpty(t *testing.T) {
	rendered := renderTextReport(&models.Report{}, false)
	if !strings.Contains(rendered, "No IPs checked.") {
		t.Fatalf("expected empty notice, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Generated: unknown") {
		t.Fatalf("expected unknown timestamp, got:\n%s", rendered)
	}
}

func TestWriteTextValidation(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := writeText(nil, cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for nil report")
	}
	if _, err := writeText(&models.Report{}, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := writeText(&models.Report{}, cfg, nil); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestTruncateTextValue(t *testing.T) {
	if got := truncateTextValue("2001:0db8:85a3:0000:0000:8a2e:0370:7334", 10); got != "2001:0d..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateTextValue("short", 10); got != "short" {
		t.Fatalf("unexpected value %q", got)
	}
}
