package export

import "strings"

// Page is one laid-out page of body lines. Header and footer are stamped
// later, once the total page count is known.
type Page struct {
	Lines []string
}

// WrapText word-wraps text to at most width runes per line. Paragraph
// breaks in the input are preserved. A single word longer than the width
// is hard-split rather than dropped — wrapping degrades gracefully, it
// never errors.
func WrapText(text string, width int) []string {
	if width <= 0 {
		width = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			for len([]rune(word)) > width {
				// flush whatever is pending, then split the oversized word
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				runes := []rune(word)
				lines = append(lines, string(runes[:width]))
				word = string(runes[width:])
			}
			switch {
			case current == "":
				current = word
			case len([]rune(current))+1+len([]rune(word)) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// Paginate packs wrapped lines into pages of at most perPage lines.
// Empty input still produces a single page so the export always carries a
// header and footer.
func Paginate(lines []string, perPage int) []Page {
	if perPage <= 0 {
		perPage = 1
	}
	if len(lines) == 0 {
		return []Page{{}}
	}
	pages := make([]Page, 0, (len(lines)+perPage-1)/perPage)
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, Page{Lines: lines[start:end]})
	}
	return pages
}
