package grapheme

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the number of terminal cells text occupies, counted per
// grapheme cluster so that multi-rune clusters are not double-counted.
func Width(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	w := 0
	for g.Next() {
		cw := runewidth.StringWidth(g.Str())
		if cw < 1 {
			cw = 1
		}
		w += cw
	}
	return w
}
