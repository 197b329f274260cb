// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Branch slug normalization
//   - Terminal and stdin helpers
//   - Opening URLs in the user's browser
package utils
