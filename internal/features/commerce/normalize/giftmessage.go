package normalize

import (
	"regexp"
	"strings"
)

// DefaultGiftMessageLineLength is the card width for most brands.
const DefaultGiftMessageLineLength = 44

// trimSet is the character set stripped from the ends of a gift message.
const trimSet = " \t\n\r\x00\x0b"

// giftMessageSubstitutions maps characters the card printer cannot render
// to ASCII stand-ins. Order matters only for readability.
var giftMessageSubstitutions = []string{
	"Ñ", "N",
	"ñ", "n",
	"ç", "c",
	"æ", "ae",
	"œ", "oe",
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"à", "a",
	"è", "e",
	"ì", "i",
	"ò", "o",
	"ù", "u",
	"ä", "a",
	"ë", "e",
	"ï", "i",
	"ö", "o",
	"ü", "u",
	"ÿ", "y",
	"â", "a",
	"ê", "e",
	"î", "i",
	"ô", "o",
	"û", "u",
	"å", "a",
	"ø", "o",
	"Ø", "O",
	"Å", "A",
	"Á", "A",
	"À", "A",
	"Â", "A",
	"Ä", "A",
	"È", "E",
	"É", "E",
	"Ê", "E",
	"Ë", "E",
	"Í", "I",
	"Î", "I",
	"Ï", "I",
	"Ì", "I",
	"Ò", "O",
	"Ó", "O",
	"Ô", "O",
	"Ö", "O",
	"Ú", "U",
	"Ù", "U",
	"Û", "U",
	"Ü", "U",
	"Ÿ", "Y",
	"Ç", "C",
	"Æ", "AE",
	"Œ", "OE",
	"^", " ",
	"|", " ",
	"~", " ",
	"‘", "'",
	"’", "'",
	"“", "\"",
	"”", "\"",
}

var (
	giftMessageReplacer = strings.NewReplacer(giftMessageSubstitutions...)
	whitespaceRun       = regexp.MustCompile(`[ \t\n\v\f\r]+`)
)

// GiftMessageOptions controls how a gift message is laid out on the card.
type GiftMessageOptions struct {
	// LineLength is the number of characters per printed line.
	LineLength int
	// VirtualNewlines pads every line to LineLength so line breaks survive
	// a printer that ignores newline characters.
	VirtualNewlines bool
}

// DefaultGiftMessageOptions returns the layout used unless a brand says otherwise.
func DefaultGiftMessageOptions() GiftMessageOptions {
	return GiftMessageOptions{
		LineLength:      DefaultGiftMessageLineLength,
		VirtualNewlines: true,
	}
}

// FixGiftMessage transliterates message and lays it out per opts.
//
// With virtual newlines every line, including wrapped continuations, is
// space padded to exactly opts.LineLength characters and the lines are
// joined with "\n". Without them all whitespace runs collapse to one space.
func FixGiftMessage(message string, opts GiftMessageOptions) string {
	message = giftMessageReplacer.Replace(message)

	if !opts.VirtualNewlines {
		return strings.Trim(whitespaceRun.ReplaceAllString(message, " "), trimSet)
	}

	if opts.LineLength <= 0 {
		opts.LineLength = DefaultGiftMessageLineLength
	}

	message = strings.TrimLeft(message, "\n")
	message = strings.TrimRight(message, trimSet)

	var lines []string
	for _, line := range strings.Split(message, "\n") {
		wrapped := wordWrap(line, opts.LineLength)
		for _, piece := range strings.Split(wrapped, "\n") {
			lines = append(lines, padRight(piece, opts.LineLength))
		}
	}

	return strings.Join(lines, "\n")
}

// wordWrap breaks s into lines of at most width characters. It breaks at
// the last space when it can, dropping that space, and otherwise cuts the
// word at width. Existing newlines reset the line.
func wordWrap(s string, width int) string {
	text := []rune(s)
	if len(text) == 0 {
		return ""
	}

	var out []rune
	lastStart, lastSpace := 0, 0

	current := 0
	for ; current < len(text); current++ {
		switch {
		case text[current] == '\n' && current+1 < len(text):
			out = append(out, text[lastStart:current+1]...)
			lastStart = current + 1
			lastSpace = current + 1
		case text[current] == ' ':
			if current-lastStart >= width {
				out = append(out, text[lastStart:current]...)
				out = append(out, '\n')
				lastStart = current + 1
			}
			lastSpace = current
		case current-lastStart >= width && lastStart >= lastSpace:
			out = append(out, text[lastStart:current]...)
			out = append(out, '\n')
			lastStart = current
			lastSpace = current
		case current-lastStart >= width && lastStart < lastSpace:
			out = append(out, text[lastStart:lastSpace]...)
			out = append(out, '\n')
			lastStart = lastSpace + 1
			lastSpace = lastStart
		}
	}

	if lastStart != current {
		out = append(out, text[lastStart:current]...)
	}

	return string(out)
}

// padRight appends spaces until s is width characters long.
func padRight(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
