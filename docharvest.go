// Package docharvest provides a documentation-harvesting pipeline.
// It discovers the pages linked from a site's sidebar navigation,
// fetches their rendered content through a bounded worker pool with
// content-hash deduplication, converts the raw markup into clean
// markdown documents, and builds a hierarchical table of contents
// over the result.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// goquery/, trafilatura/, sqlite/).
package docharvest
