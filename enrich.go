// Package enrich turns search hits into enriched page records. For every
// hit it fetches the page, picks the region of the document that holds the
// article, finds a representative image and falls back to the search
// snippet when the page cannot provide usable content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, prometheus/).
package enrich
