// Package sanitizer normalizes free-text input before validation: clinic and
// treatment names, city labels, and patient phone numbers. Sanitization is
// lossy on purpose — it runs before validation so that equivalent inputs
// compare equal when checking for duplicates.
package sanitizer
