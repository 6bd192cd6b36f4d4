// Package sanitizer provides input normalization functions for catalog and
// booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Facility types: Lowercase, collapse separators - "Meeting Room" becomes "meeting_room"
//   - URLs: Enforce HTTPS, lowercase domains, preserve paths
package sanitizer
