package extract

import "github.com/ppiankov/claimforge/internal/model"

// vocabulary holds the language-specific word lists used by the extractors.
// Marker and keyword order matters: the first match wins.
type vocabulary struct {
	nameMarkers        []string
	knownMarkers       []string
	distinctiveMarkers []string
	effectMarkers      []string

	knownKeywords       []string
	distinctiveKeywords []string
	effectKeywords      []string

	conjunctions []string   // Replaced with commas before splitting
	fillers      [][]string // Leading words stripped from feature phrases
}

var russian = vocabulary{
	nameMarkers:        []string{"название", "заголовок", "имя"},
	knownMarkers:       []string{"известные признаки", "известные", "прототип"},
	distinctiveMarkers: []string{"отличительные признаки", "отличительные", "новые признаки"},
	effectMarkers:      []string{"эффект", "результат", "икр", "идеальный конечный результат"},

	knownKeywords:       []string{"известн", "прототип", "существующ"},
	distinctiveKeywords: []string{"нов", "отлич", "предлагаем", "характериз"},
	effectKeywords:      []string{"эффект", "результат", "обеспеч", "позволя"},

	conjunctions: []string{"и", "или", "а также"},
	fillers: words(
		"содержит", "содержат", "имеет", "имеют", "включает", "включают",
		"включающий", "включающая", "включающее", "включающие",
		"снабжен", "снабжён", "снабжена", "снабжено", "снабжены", "снабженные",
		"использование", "использует", "используют", "использующий",
		"оснащен", "оснащён", "оснащена", "оснащено", "оснащены",
		"управляющий", "управляющая", "управляющее", "управляющие",
		"предусматривает", "предусмотрен", "предусмотрена", "предусмотрено",
	),
}

var english = vocabulary{
	nameMarkers:        []string{"title", "heading", "name"},
	knownMarkers:       []string{"known features", "known", "prototype"},
	distinctiveMarkers: []string{"distinctive features", "distinctive", "new features"},
	effectMarkers:      []string{"effect", "result", "ideal final result"},

	knownKeywords:       []string{"known", "prototype", "existing"},
	distinctiveKeywords: []string{"new", "distinct", "propose", "characteriz"},
	effectKeywords:      []string{"effect", "result", "provid", "allow"},

	conjunctions: []string{"and", "or", "as well as"},
	fillers: words(
		"contains", "contain", "comprises", "comprise", "comprising",
		"has", "have", "having", "includes", "include", "including",
		"equipped with", "provided with", "fitted with", "furnished with",
		"is equipped with", "is provided with", "is fitted with",
		"uses", "use", "using", "use of", "provides for", "controlling",
	),
}

// vocabularyFor returns the word lists for lang
func vocabularyFor(lang model.Language) *vocabulary {
	if lang == model.LanguageEN {
		return &english
	}
	return &russian
}

// words turns filler phrases into token sequences, longest first so that
// "is equipped with" wins over "equipped with"
func words(phrases ...string) [][]string {
	out := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, splitFields(p))
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
