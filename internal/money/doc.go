// Package money parses currency figures out of warehouse cells and free text.
//
// Parse handles a single cell value ("$425,000", "-1,250.50", "393000").
// Extract scans prose for the first currency-like token, preferring figures
// with a currency symbol, thousands separators or a fractional part over bare
// integers so that years and counts in the surrounding text are not mistaken
// for amounts.
//
// Both return an explicit ok flag instead of a zero value, so callers can
// tell "no figure found" apart from a genuine zero.
package money
