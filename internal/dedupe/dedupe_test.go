package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/morph"
)

func TestRun_PumpRadiatorScenario(t *testing.T) {
	d := New(morph.NewSnowball(), model.LanguageEN)

	res := d.Run([]string{"pump", "pump", "radiator"}, []string{"pump", "pressure sensor"})

	assert.Equal(t, []string{"pump", "radiator"}, res.Known)
	assert.Equal(t, []string{"pressure sensor"}, res.Distinctive)
	assert.Equal(t, "pump, radiator", res.KnownText())
	assert.Equal(t, "pressure sensor", res.DistinctiveText())
	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, 5, res.Total)
	assert.InDelta(t, 40.0, res.Rate, 1e-9)
}

func TestRun_RussianInflectionsAreDuplicates(t *testing.T) {
	d := New(morph.NewSnowball(), model.LanguageRU)

	res := d.Run([]string{"насос", "радиатор"}, []string{"насоса", "датчик давления"})

	assert.Equal(t, []string{"насос", "радиатор"}, res.Known)
	assert.Equal(t, []string{"датчик давления"}, res.Distinctive)
	assert.Equal(t, 1, res.Removed)
}

func TestRun_CombinationOfSeenFeatures(t *testing.T) {
	d := New(nil, model.LanguageRU)

	res := d.Run([]string{"корпус"}, []string{"фильтр", "корпус фильтр", "фильтр-корпус лампа"})

	assert.Equal(t, []string{"фильтр", "фильтр-корпус лампа"}, res.Distinctive)
	assert.Equal(t, 1, res.Removed)
}

func TestRun_ContainedPhraseIsDuplicate(t *testing.T) {
	d := New(morph.Identity{}, model.LanguageEN)

	res := d.Run([]string{"pressure sensor", "sensor"}, nil)

	assert.Equal(t, []string{"pressure sensor"}, res.Known)
	assert.Equal(t, 1, res.Removed)
}

func TestRun_EmptyStemSetIsKept(t *testing.T) {
	d := New(morph.Identity{}, model.LanguageEN)

	res := d.Run([]string{"pump", " - "}, []string{"--"})

	assert.Equal(t, []string{"pump", " - "}, res.Known)
	assert.Equal(t, []string{"--"}, res.Distinctive)
	assert.Zero(t, res.Removed)
}

func TestRun_EmptyInput(t *testing.T) {
	res := New(nil, model.LanguageRU).Run(nil, nil)

	assert.Empty(t, res.Known)
	assert.Empty(t, res.Distinctive)
	assert.Equal(t, "", res.KnownText())
	assert.Zero(t, res.Rate)
}

func TestRun_Idempotent(t *testing.T) {
	d := New(morph.NewSnowball(), model.LanguageRU)
	known := []string{"насос", "насоса", "радиатор", "вентилятор", "радиатора охлаждения"}
	distinctive := []string{"датчик температуры", "насос", "датчика температуры", "клапан"}

	first := d.Run(known, distinctive)
	require.NotZero(t, first.Removed)

	second := d.Run(first.Known, first.Distinctive)
	assert.Zero(t, second.Removed)
	assert.Zero(t, second.Rate)
	assert.Equal(t, first.Known, second.Known)
	assert.Equal(t, first.Distinctive, second.Distinctive)
}

func TestRun_AcceptedDistinctiveNeverCovered(t *testing.T) {
	s := morph.NewSnowball()
	d := New(s, model.LanguageRU)
	known := []string{"корпус", "фильтр", "корпус с фильтром"}
	distinctive := []string{"лампа", "ультрафиолетовая лампа", "лампа", "датчик", "фильтр лампа датчик"}

	res := d.Run(known, distinctive)

	seen := make(map[string]struct{})
	for _, phrase := range res.Known {
		union(seen, morph.StemSet(s, phrase, model.LanguageRU))
	}
	for _, phrase := range res.Distinctive {
		stems := morph.StemSet(s, phrase, model.LanguageRU)
		assert.False(t, subset(stems, seen), "phrase %q is covered by earlier features", phrase)
		union(seen, stems)
	}
}
