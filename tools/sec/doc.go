// Package sec provides the tools for SEC filing lookups:
// ticker to CIK mapping, latest annual report metadata and its text.
//
// The tools never return an error to the caller,
// failures are returned as `{"error": "message"}` object.
package sec
