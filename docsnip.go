// Package docsnip extracts page titles, navigable links and annotated code
// examples from JavaScript-rendered documentation sites.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package docsnip
