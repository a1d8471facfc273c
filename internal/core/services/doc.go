// Package services implements the driving port interfaces.
//
// Builder owns the portfolio state and its history; Dispatcher routes typed
// commands to it. Renderer, ExportService and ShareService turn state into
// HTML, JSON and share links. Autosaver and ImportWatcher run in the
// background for the long-lived front ends.
//
// Services are pure Go with no CGO dependencies.
package services
