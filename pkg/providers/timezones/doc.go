// Package timezones provides IANA timezone names as a dropdown options
// provider, prefix-first search over them and a small net/http handler that
// returns matching options as JSON for client-side filtering.
//
// The provider is registered under Name by the UI schema loader, so
// declarations can reference it with `dropdown: timezones`.
package timezones
