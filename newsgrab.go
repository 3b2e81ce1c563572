// Package newsgrab ingests news articles from many independently structured
// sources. Each fetched page is turned into a dispatch decision: either the
// page is extracted into a canonical content record, or the raw response is
// kept as an article record so a later catch-up pass can retry it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, trafilatura/).
package newsgrab
