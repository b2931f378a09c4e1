// Package nuspell implements the affix-stripping, compound-decomposition and
// spell-entry core of a Hunspell-compatible spelling checker.
package nuspell

// Flag is a 16-bit flag code attached to dictionary stems and affix entries.
type Flag uint16

// NoFlag is the sentinel for "flag not configured" in the affix file.
const NoFlag Flag = 0

// HiddenHomonymFlag marks dictionary entries that must be skipped during
// affix matching. User-configured flags must never collide with it.
const HiddenHomonymFlag Flag = 0xFFFF
