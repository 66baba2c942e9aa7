package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// ansiColorNames maps the 8 ANSI color names (and their bright variants,
// offset by 8) to palette indices. "purple" is a synonym for "magenta".
var ansiColorNames = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"purple":  5,
	"cyan":    6,
	"white":   7,
}

// Parse builds a Style from a specification string: up to two colors
// (foreground first, then background) and any number of attribute words,
// separated by spaces. The special colors are:
//
//	auto    use the supplied default for that plane
//	normal  the terminal's own foreground/background (no escape codes)
//	syntax  take the foreground from the syntax highlighter (foreground only)
//	raw     pass input text through unchanged (entire style)
//
// Real colors are hex codes ("#ffeeee"), ANSI color names ("brightred"), or
// ANSI-256 palette numbers ("28"). isEmph tags the resulting style as an
// emphasis style for edit inference.
func Parse(spec string, fgDefault, bgDefault termenv.Color, trueColor, isEmph bool) (Style, error) {
	s := Style{IsEmph: isEmph}
	colorsSeen := 0
	for _, word := range strings.Fields(spec) {
		word = strings.ToLower(word)
		switch word {
		case "raw":
			s.IsRaw = true
			continue
		case "blink", "bold", "dim", "hidden", "italic", "reverse", "strike", "ul", "underline":
			switch word {
			case "bold":
				s.Bold = true
			case "dim":
				s.Dim = true
			case "italic":
				s.Italic = true
			case "ul", "underline":
				s.Underline = true
			case "reverse":
				s.Reverse = true
			case "strike":
				s.Strike = true
			default:
				return Style{}, fmt.Errorf("parse style %q: attribute %q is not supported", spec, word)
			}
			continue
		}

		// Anything else must be a color for the next free plane.
		colorsSeen++
		switch colorsSeen {
		case 1:
			switch word {
			case "auto":
				s.Foreground = fgDefault
			case "normal":
				s.Foreground = nil
			case "syntax":
				s.IsSyntaxHighlighted = true
			default:
				c, err := parseColor(word, trueColor)
				if err != nil {
					return Style{}, fmt.Errorf("parse style %q: %w", spec, err)
				}
				s.Foreground = c
			}
		case 2:
			switch word {
			case "auto":
				s.Background = bgDefault
			case "normal":
				s.Background = nil
			case "syntax":
				return Style{}, fmt.Errorf("parse style %q: %q is not a valid background color", spec, word)
			default:
				c, err := parseColor(word, trueColor)
				if err != nil {
					return Style{}, fmt.Errorf("parse style %q: %w", spec, err)
				}
				s.Background = c
			}
		default:
			return Style{}, fmt.Errorf("parse style %q: more than two colors", spec)
		}
	}
	return s, nil
}

// ParseDecoration reads a decoration specification ("blue box", "ul",
// "omit", ...) and applies its decoration kind to base. Colors appearing in
// the decoration spec select the decoration's drawing color; when base has
// no foreground of its own the decoration color is promoted to it so the
// decoration is drawn visibly.
func ParseDecoration(base Style, spec string, trueColor bool) (Style, error) {
	for _, word := range strings.Fields(spec) {
		switch strings.ToLower(word) {
		case "box":
			base.Decoration = DecorationBox
		case "ul", "underline":
			base.Decoration = DecorationUnderline
		case "omit":
			base.IsOmitted = true
		case "none", "plain":
			base.Decoration = NoDecoration
		default:
			c, err := parseColor(strings.ToLower(word), trueColor)
			if err != nil {
				return Style{}, fmt.Errorf("parse decoration style %q: %w", spec, err)
			}
			if base.Foreground == nil {
				base.Foreground = c
			}
		}
	}
	return base, nil
}

func parseColor(word string, trueColor bool) (termenv.Color, error) {
	if strings.HasPrefix(word, "#") {
		if len(word) != 7 {
			return nil, fmt.Errorf("invalid hex color %q", word)
		}
		return ToTerminal(termenv.RGBColor(word), trueColor), nil
	}
	if n, ok := ansiColorNames[word]; ok {
		return termenv.ANSIColor(n), nil
	}
	if bright, found := strings.CutPrefix(word, "bright"); found {
		if n, ok := ansiColorNames[bright]; ok {
			return termenv.ANSIColor(n + 8), nil
		}
	}
	if n, err := strconv.Atoi(word); err == nil {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("ANSI color number %d out of range 0-255", n)
		}
		return termenv.ANSI256Color(n), nil
	}
	return nil, fmt.Errorf("unrecognized color %q", word)
}
