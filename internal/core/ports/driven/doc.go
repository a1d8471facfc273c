// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PortfolioStore: Saved portfolio persistence (one record per key)
//   - SessionStore: History log, cursor and selection persistence
//   - ConfigStore: Application configuration
//   - TemplateCatalog: Ready-made portfolio templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - MarkdownRenderer: Renders Markdown fields on export. Without it, text is escaped verbatim.
//   - Clipboard: System clipboard. Without it, share links are printed only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
