// Package web serves the portfolio and its device previews over local HTTP.
package web

import "errors"

// ErrMissingBuilderService is returned when the builder service is not provided.
var ErrMissingBuilderService = errors.New("web: builder service is required")

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("web: export service is required")
