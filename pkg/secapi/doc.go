// Package secapi provides a client for the SEC API service: ticker mapping,
// full-text filing query, and the section extractor.
package secapi
