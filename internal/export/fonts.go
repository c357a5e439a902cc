package export

// fontSpec names a Noto font family and the TTF file it loads from,
// relative to the configured font directory.
type fontSpec struct {
	Family string
	File   string
}

// defaultFontFamily is the built-in fallback used when a language has no
// mapped font or the mapped font file is unavailable.
const defaultFontFamily = "Helvetica"

// fontTable maps output language codes to the font able to render them.
// Devanagari covers both Hindi and Marathi.
var fontTable = map[string]fontSpec{
	"hi": {Family: "NotoSansDevanagari", File: "NotoSansDevanagari-Regular.ttf"},
	"gu": {Family: "NotoSansGujarati", File: "NotoSansGujarati.ttf"},
	"kn": {Family: "NotoSansKannada", File: "NotoSansKannada-Regular.ttf"},
	"ta": {Family: "NotoSansTamil", File: "NotoSansTamil-Regular.ttf"},
	"te": {Family: "NotoSansTelugu", File: "NotoSansTelugu-Regular.ttf"},
	"mr": {Family: "NotoSansDevanagari", File: "NotoSansDevanagari-Regular.ttf"},
	"ml": {Family: "NotoSansMalayalam", File: "NotoSansMalayalam-Regular.ttf"},
	"bn": {Family: "NotoSansBengali", File: "NotoSansBengali-Regular.ttf"},
	"pa": {Family: "NotoSansGurmukhi", File: "NotoSansGurmukhi-Regular.ttf"},
	"or": {Family: "NotoSansOriya", File: "NotoSansOriya-Regular.ttf"},
	"as": {Family: "NotoSansAssamese", File: "NotoSansAssamese-Regular.ttf"},
}

func fontFor(language string) (fontSpec, bool) {
	spec, ok := fontTable[language]
	return spec, ok
}
