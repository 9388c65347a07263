// Package report renders memory layouts as aligned, bar-charted
// terminal text.
//
// A region renders as three parts: a summary line with the used and
// declared sizes, a 50-cell proportional bar, and one line per record
// showing its size, its change since the previous build, and its share
// of the region:
//
//	FLASH used:       137.39 KiB  /  520.00 KiB  (26%)
//	▓▓▓▓▓▓▓▓▓▓▓▓▓░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
//	bootloader:         8.00 KiB                  (2%)
//	.text:            126.95 KiB     +24         (24%)
//	miscellaneous:      2.44 KiB                  (0%)
//
// Record lines and bar segments alternate two accent colors; growth
// deltas are yellow, shrinkage mint. Styling is plain lipgloss and can
// be switched off wholesale for non-terminal output, leaving byte
// stable plain text.
package report
