// Package sqlite provides a SQLite-based implementation of the portfolio
// and session stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Both stores share one database connection:
//
//   - PortfolioStore: saved portfolios keyed by storage key
//   - SessionStore: the builder's history log, cursor and selection
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.folio/data/folio.db
package sqlite
