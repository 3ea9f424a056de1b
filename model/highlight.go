package model

// HighlightColor is a run background highlight. Values follow the
// WordprocessingML ST_HighlightColor enumeration.
type HighlightColor int

const (
	HighlightNone HighlightColor = iota
	HighlightBlack
	HighlightBlue
	HighlightCyan
	HighlightGreen
	HighlightMagenta
	HighlightRed
	HighlightYellow
	HighlightWhite
	HighlightDarkBlue
	HighlightDarkCyan
	HighlightDarkGreen
	HighlightDarkMagenta
	HighlightDarkRed
	HighlightDarkYellow
	HighlightDarkGray
	HighlightLightGray
)

var highlightNames = [...]string{
	HighlightNone:        "none",
	HighlightBlack:       "black",
	HighlightBlue:        "blue",
	HighlightCyan:        "cyan",
	HighlightGreen:       "green",
	HighlightMagenta:     "magenta",
	HighlightRed:         "red",
	HighlightYellow:      "yellow",
	HighlightWhite:       "white",
	HighlightDarkBlue:    "darkBlue",
	HighlightDarkCyan:    "darkCyan",
	HighlightDarkGreen:   "darkGreen",
	HighlightDarkMagenta: "darkMagenta",
	HighlightDarkRed:     "darkRed",
	HighlightDarkYellow:  "darkYellow",
	HighlightDarkGray:    "darkGray",
	HighlightLightGray:   "lightGray",
}

// String returns the w:highlight val attribute for the color.
func (c HighlightColor) String() string {
	if c < 0 || int(c) >= len(highlightNames) {
		return "none"
	}
	return highlightNames[c]
}

// ParseHighlight maps a w:highlight val attribute to a color.
// Unknown or empty values map to HighlightNone.
func ParseHighlight(val string) HighlightColor {
	for i, name := range highlightNames {
		if name == val {
			return HighlightColor(i)
		}
	}
	return HighlightNone
}
