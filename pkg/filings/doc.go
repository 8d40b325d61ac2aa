// Package filings resolves ticker symbols to filer identifiers, locates the
// latest filing of a form type, and extracts normalized plain text from it.
//
// Text extraction runs an ordered chain of stages: the whole document from
// the extractor, then the selected sections one by one, then the raw
// document download. The first stage that yields text wins.
package filings
