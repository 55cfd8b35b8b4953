package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mymoney/internal/report"
)

const (
	CSVFileName  = "relatorio_mymoney.csv"
	HTMLFileName = "relatorio_mymoney.html"
)

// FileRenderer writes the CSV and HTML reports into a directory.
type FileRenderer struct {
	dir string
}

func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{dir: dir}
}

// Render writes both report files atomically enough for our purposes: the
// content is built in memory first, so a failed render never truncates a
// previous export.
func (f *FileRenderer) Render(ctx context.Context, rows []report.Row) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	var csvBuf, htmlBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, rows); err != nil {
		return err
	}
	if err := WriteHTML(&htmlBuf, rows); err != nil {
		return err
	}

	csvPath := filepath.Join(f.dir, CSVFileName)
	if err := os.WriteFile(csvPath, csvBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", CSVFileName, err)
	}
	htmlPath := filepath.Join(f.dir, HTMLFileName)
	if err := os.WriteFile(htmlPath, htmlBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", HTMLFileName, err)
	}

	slog.InfoContext(ctx, "Report files rendered",
		"csv", csvPath, "html", htmlPath, "rows", len(rows))
	return nil
}

// Reset removes previously exported report files. Missing files are fine.
func (f *FileRenderer) Reset(ctx context.Context) error {
	for _, name := range []string{CSVFileName, HTMLFileName} {
		path := filepath.Join(f.dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	slog.InfoContext(ctx, "Exported reports removed", "dir", f.dir)
	return nil
}
