package sim

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// Default field durations.
const (
	fieldTurns         = 5
	extendedFieldTurns = 8
)

var weatherRocks = map[battle.Weather]dex.Item{
	battle.WeatherRain:      dex.ItemDampRock,
	battle.WeatherSun:       dex.ItemHeatRock,
	battle.WeatherHail:      dex.ItemIcyRock,
	battle.WeatherSnow:      dex.ItemIcyRock,
	battle.WeatherSandstorm: dex.ItemSmoothRock,
}

// WeatherDuration returns how long w lasts when set by a creature holding
// item. Strong weathers, and ability weather before generation 6, are
// permanent.
func (s *Simulator) WeatherDuration(w battle.Weather, item dex.Item, fromAbility bool) int {
	if w.Strong() || (fromAbility && s.gen <= 5) {
		return battle.PermanentTurns
	}
	if rock, ok := weatherRocks[w]; ok && rock == item {
		return extendedFieldTurns
	}
	return fieldTurns
}

// SetWeather sets w on cond, on behalf of by's active creature, if the
// current weather allows it.
//
// Postcondition: returns true iff the weather changed.
func (s *Simulator) SetWeather(cond *battle.Conditions, w battle.Weather, by *battle.Side, fromAbility bool) bool {
	if !cond.SetWeather(w, s.WeatherDuration(w, by.ActiveCreature().Item, fromAbility)) {
		return false
	}
	s.emit(by.ID, EventField, "the weather became %s", w)
	return true
}

// SetTerrain sets t on cond for 5 turns, or 8 when by's active creature
// holds a Terrain Extender.
//
// Postcondition: returns true iff the terrain changed.
func (s *Simulator) SetTerrain(cond *battle.Conditions, t battle.Terrain, by *battle.Side) bool {
	turns := fieldTurns
	if by.ActiveCreature().Item == dex.ItemTerrainExtender {
		turns = extendedFieldTurns
	}
	if !cond.SetTerrain(t, turns) {
		return false
	}
	s.emit(by.ID, EventField, "the terrain became %s", t)
	return true
}
