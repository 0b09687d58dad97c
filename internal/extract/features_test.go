package extract

import (
	"reflect"
	"testing"

	"github.com/ppiankov/claimforge/internal/model"
)

func TestFeatures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		lang model.Language
		want []string
	}{
		{
			name: "russian conjunction and period",
			raw:  "содержит насос, радиатор и вентилятор.",
			lang: model.LanguageRU,
			want: []string{"насос", "радиатор", "вентилятор"},
		},
		{
			name: "russian filler participle",
			raw:  "имеет датчик температуры, управляющий скоростью вентилятора.",
			lang: model.LanguageRU,
			want: []string{"датчик температуры", "скоростью вентилятора"},
		},
		{
			name: "russian a takzhe and semicolon",
			raw:  "корпус; крышка а также Снабжён фильтром",
			lang: model.LanguageRU,
			want: []string{"корпус", "крышка", "фильтром"},
		},
		{
			name: "english multi-word filler",
			raw:  "equipped with UV emitter",
			lang: model.LanguageEN,
			want: []string{"UV emitter"},
		},
		{
			name: "english conjunctions",
			raw:  "housing and filter; pump as well as valve OR lid",
			lang: model.LanguageEN,
			want: []string{"housing", "filter", "pump", "valve", "lid"},
		},
		{
			name: "longest filler wins",
			raw:  "is equipped with a lamp",
			lang: model.LanguageEN,
			want: []string{"a lamp"},
		},
		{
			name: "filler-only piece dropped",
			raw:  "содержит, насос",
			lang: model.LanguageRU,
			want: []string{"насос"},
		},
		{
			name: "empty",
			raw:  "  ",
			lang: model.LanguageRU,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Features(tt.raw, tt.lang)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Features(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFeatures_DecomposedInput(t *testing.T) {
	// "снабжён" typed with a combining diaeresis
	got := Features("корпус, снабже\u0308н фильтром", model.LanguageRU)
	want := []string{"корпус", "фильтром"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFeatures_StripsStackedFillers(t *testing.T) {
	got := Features("Содержит включающий Корпус", model.LanguageRU)
	if len(got) != 1 || got[0] != "Корпус" {
		t.Errorf("Expected [Корпус], got %q", got)
	}
}

func TestFeatures_KeepsWordsContainingConjunctions(t *testing.T) {
	got := Features("Sandwich panel, motor", model.LanguageEN)
	want := []string{"Sandwich panel", "motor"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
