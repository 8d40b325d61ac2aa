// Package registry composes the tool groups into one namespace.
//
// Each group is published under its name as the prefix: the tool `name`
// of the group `sec` is published as `sec_name`. Groups that implement
// tools.Loader are loaded before they are merged.
//
// The registry is initialized once, Initialize is idempotent after success.
// A failed initialization is not retried: the registry must be re-created.
package registry
