package layout

import "github.com/mattn/go-runewidth"

// ellipsis is the marker appended to truncated content.
const ellipsis = "…"

// MeasureText returns the display width of s in terminal cells.
// Wide runes (CJK, emoji) count as two cells.
func MeasureText(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateText shortens s to at most width display cells, appending an
// ellipsis when content is dropped. Width 0 yields an empty string; a
// width too small for the ellipsis yields the bare marker prefix.
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
