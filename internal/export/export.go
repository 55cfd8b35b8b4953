// Package export renders report rows to the supported targets: CSV, an HTML
// document, files on disk, and Google Sheets.
package export

import "errors"

// ErrUnsupported means the export target is not available in the current
// configuration. Callers skip the target with an informational log.
var ErrUnsupported = errors.New("export target not supported")
