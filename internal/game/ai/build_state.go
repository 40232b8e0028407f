package ai

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
)

// ViewTable converts a controller view into plain data for scripts. Roster
// positions are 1-based, as Lua expects:
//
//	{ turn, side, weather, terrain,
//	  own      = { active, remaining, team = {...}, bag = {item = count} },
//	  opponent = { active, remaining, team = {...} } }
//
// Each team entry carries name, species, level, hp, max_hp, status, item,
// ability, types, moves and fainted. The opponent's bag is not exposed.
func ViewTable(v battle.View) map[string]any {
	own := snapshotTable(v.Own)
	bag := map[string]any{}
	for _, it := range v.Own.Bag.Items() {
		bag[string(it)] = v.Own.Bag.Count(it)
	}
	own["bag"] = bag
	return map[string]any{
		"turn":     v.Turn,
		"side":     int(v.Self) + 1,
		"weather":  weatherName(v.Conditions),
		"terrain":  terrainName(v.Conditions),
		"own":      own,
		"opponent": snapshotTable(v.Opponent),
	}
}

func weatherName(c battle.Conditions) string {
	if c.Weather() == battle.WeatherNone {
		return ""
	}
	return c.Weather().String()
}

func terrainName(c battle.Conditions) string {
	if c.Terrain() == battle.TerrainNone {
		return ""
	}
	return c.Terrain().String()
}

func snapshotTable(s battle.Snapshot) map[string]any {
	team := make([]any, len(s.Team))
	remaining := 0
	for i, c := range s.Team {
		team[i] = creatureTable(c)
		if !c.Fainted() {
			remaining++
		}
	}
	return map[string]any{
		"active":    s.Active + 1,
		"remaining": remaining,
		"team":      team,
	}
}

func creatureTable(c *creature.Creature) map[string]any {
	types := make([]string, len(c.Types))
	for i, t := range c.Types {
		types[i] = string(t)
	}
	moves := make([]string, len(c.Moves))
	for i, m := range c.Moves {
		moves[i] = string(m)
	}
	status := ""
	if c.Status != creature.StatusNone {
		status = c.Status.String()
	}
	return map[string]any{
		"name":    c.Name,
		"species": string(c.Species),
		"level":   c.Level,
		"hp":      c.HP,
		"max_hp":  c.MaxHP,
		"status":  status,
		"item":    string(c.Item),
		"ability": string(c.Ability),
		"types":   types,
		"moves":   moves,
		"fainted": c.Fainted(),
	}
}
