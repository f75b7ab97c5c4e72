// Package desktop implements the value types of the [Desktop Entry Specification] that item data
// is encoded with: escaped strings, semicolon separated lists and localized keys.
//
// [Desktop Entry Specification]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/value-types.html
package desktop
