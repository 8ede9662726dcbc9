// Package display holds terminal presentation helpers: the banner, size and
// duration formatting, and summary tables.
package display
