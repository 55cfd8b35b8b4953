package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileRendererRenderAndReset(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "exports")
	fr := NewFileRenderer(dir)

	if err := fr.Render(ctx, sampleRows()); err != nil {
		t.Fatalf("render: %v", err)
	}

	csvBytes, err := os.ReadFile(filepath.Join(dir, CSVFileName))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(csvBytes), "Saldo Atual") {
		t.Fatal("csv missing summary row")
	}
	if _, err := os.Stat(filepath.Join(dir, HTMLFileName)); err != nil {
		t.Fatalf("html file: %v", err)
	}

	if err := fr.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, CSVFileName)); !os.IsNotExist(err) {
		t.Fatal("csv survived reset")
	}

	// Resetting again is a no-op.
	if err := fr.Reset(ctx); err != nil {
		t.Fatalf("second reset: %v", err)
	}
}
