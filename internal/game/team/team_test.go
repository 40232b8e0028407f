package team_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/team"
)

var (
	shippedOnce sync.Once
	shipped     *dex.Dex
	shippedErr  error
)

func testDex(t testing.TB) *dex.Dex {
	t.Helper()
	shippedOnce.Do(func() { shipped, shippedErr = dex.LoadDirectory("../../../data") })
	require.NoError(t, shippedErr)
	return shipped
}

const kanto = `Sparky (Pikachu) (M) @ Light Ball
Ability: Static
Level: 50
Shiny: Yes
EVs: 252 SpA / 4 SpD / 252 Spe
Timid Nature
IVs: 0 Atk
- Thunderbolt
- Quick Attack
- Hidden Power [Ice]

Garchomp (F)
Level: 50
Happiness: 0
EVs: 252 Atk / 4 Def / 252 Spe
Jolly Nature
- Earthquake
`

func TestStatFormulas(t *testing.T) {
	// Level 50 Garchomp, 31 IVs, neutral attack and boosted speed.
	assert.Equal(t, 183, team.HP(108, 31, 0, 50))
	assert.Equal(t, 182, team.Stat(130, 31, 252, 50, 10))
	assert.Equal(t, 169, team.Stat(102, 31, 252, 50, 11))
	assert.Equal(t, 54, team.Stat(55, 0, 0, 50, 9))
}

func TestParseShowdown(t *testing.T) {
	tm, err := team.ParseShowdown(strings.NewReader(kanto), "kanto")
	require.NoError(t, err)
	require.Len(t, tm.Members, 2)
	assert.Equal(t, "kanto", tm.Name)

	p := tm.Members[0]
	assert.Equal(t, "Sparky", p.Name)
	assert.Equal(t, "Pikachu", p.Species)
	assert.Equal(t, "M", p.Gender)
	assert.Equal(t, "Light Ball", p.Item)
	assert.Equal(t, "Static", p.Ability)
	assert.Equal(t, 50, p.Level)
	assert.Equal(t, "Timid", p.Nature)
	assert.Equal(t, team.Spread{team.KeySpecialAttack: 252, team.KeySpecialDefense: 4, team.KeySpeed: 252}, p.EVs)
	assert.Equal(t, team.Spread{team.KeyAttack: 0}, p.IVs)
	assert.Equal(t, []string{"Thunderbolt", "Quick Attack", "Hidden Power"}, p.Moves)

	g := tm.Members[1]
	assert.Empty(t, g.Name)
	assert.Equal(t, "Garchomp", g.Species)
	assert.Equal(t, "F", g.Gender)
	require.NotNil(t, g.Friendship)
	assert.Zero(t, *g.Friendship)
}

func TestParseShowdown_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "\n\n",
		"unknown line":   "Pikachu\nFavourite Colour: Yellow\n- Tackle\n",
		"bad level":      "Pikachu\nLevel: fifty\n",
		"bad stat name":  "Pikachu\nEVs: 252 Foo\n",
		"bad stat value": "Pikachu\nEVs: lots Atk\n",
		"parentheses":    "Sparky (Pikachu\n- Tackle\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := team.ParseShowdown(strings.NewReader(text), "x")
			assert.ErrorIs(t, err, team.ErrSyntax)
		})
	}
}

func TestFormatShowdown_ParsesBack(t *testing.T) {
	tm, err := team.ParseShowdown(strings.NewReader(kanto), "kanto")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, team.FormatShowdown(&buf, tm))

	again, err := team.ParseShowdown(&buf, "kanto")
	require.NoError(t, err)
	assert.Equal(t, tm, again)
}

func TestBuild_ComputesStats(t *testing.T) {
	tm, err := team.ParseShowdown(strings.NewReader(kanto), "kanto")
	require.NoError(t, err)
	tm.Members[0].Moves = []string{"Thunderbolt", "Quick Attack"}

	roster, bag, err := tm.Build(testDex(t))
	require.NoError(t, err)
	assert.Nil(t, bag)
	require.Len(t, roster, 2)

	p := roster[0]
	assert.Equal(t, dex.SpeciesID("pikachu"), p.Species)
	assert.Equal(t, "Sparky", p.Name)
	assert.Equal(t, dex.Ability("static"), p.Ability)
	assert.Equal(t, dex.ItemLightBall, p.Item)
	assert.Equal(t, creature.Male, p.Gender)
	assert.Equal(t, team.DefaultFriendship, p.Friendship)
	assert.Equal(t, []dex.MoveID{"thunderbolt", "quickattack"}, p.Moves)
	assert.Equal(t, 54, p.Stats.Attack, "timid lowers attack, 0 IV")
	assert.Equal(t, p.MaxHP, p.HP)

	g := roster[1]
	assert.Equal(t, "Garchomp", g.Name)
	assert.Equal(t, 183, g.MaxHP)
	assert.Equal(t, 182, g.Stats.Attack)
	assert.Equal(t, 169, g.Stats.Speed)
	assert.Equal(t, dex.Ability("sandveil"), g.Ability, "first species ability by default")
	assert.Zero(t, g.Friendship)
}

func TestBuild_ShedinjaHasOneHP(t *testing.T) {
	c, err := team.Build(&team.Set{Species: "Shedinja", EVs: team.Spread{team.KeyHP: 252}, Moves: []string{"Tackle"}}, testDex(t))
	require.NoError(t, err)
	assert.Equal(t, 1, c.HP)
	assert.Equal(t, 1, c.MaxHP)
	assert.Equal(t, 100, c.Level)
}

func TestBuild_Errors(t *testing.T) {
	d := testDex(t)
	cases := []struct {
		name string
		set  team.Set
		want error
	}{
		{"unknown species", team.Set{Species: "Missingno", Moves: []string{"Tackle"}}, team.ErrUnknownSpecies},
		{"unknown move", team.Set{Species: "Pikachu", Moves: []string{"Splash"}}, team.ErrUnknownMove},
		{"unknown nature", team.Set{Species: "Pikachu", Nature: "Grumpy", Moves: []string{"Tackle"}}, team.ErrUnknownNature},
		{"no species", team.Set{Moves: []string{"Tackle"}}, team.ErrInvalidSet},
		{"no moves", team.Set{Species: "Pikachu"}, team.ErrInvalidSet},
		{"five moves", team.Set{Species: "Pikachu", Moves: []string{"Tackle", "Surf", "Thunderbolt", "Quick Attack", "Agility"}}, team.ErrInvalidSet},
		{"level too high", team.Set{Species: "Pikachu", Level: 101, Moves: []string{"Tackle"}}, team.ErrInvalidSet},
		{"ev too high", team.Set{Species: "Pikachu", EVs: team.Spread{team.KeyAttack: 253}, Moves: []string{"Tackle"}}, team.ErrInvalidSet},
		{"ev total", team.Set{Species: "Pikachu", EVs: team.Spread{team.KeyAttack: 252, team.KeySpeed: 252, team.KeyHP: 8}, Moves: []string{"Tackle"}}, team.ErrInvalidSet},
		{"iv too high", team.Set{Species: "Pikachu", IVs: team.Spread{team.KeySpeed: 32}, Moves: []string{"Tackle"}}, team.ErrInvalidSet},
		{"unknown stat key", team.Set{Species: "Pikachu", EVs: team.Spread{"luck": 4}, Moves: []string{"Tackle"}}, team.ErrInvalidSet},
		{"bad gender", team.Set{Species: "Pikachu", Gender: "X", Moves: []string{"Tackle"}}, team.ErrInvalidSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := team.Build(&tc.set, d)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTeamBuild_BagAndSize(t *testing.T) {
	d := testDex(t)
	member := team.Set{Species: "Pikachu", Moves: []string{"Tackle"}}

	tm := &team.Team{Name: "t", Members: []team.Set{member}, Bag: map[string]int{"Hyper Potion": 2, "potion": 0}}
	_, bag, err := tm.Build(d)
	require.NoError(t, err)
	assert.Equal(t, 2, bag.Count(dex.ItemHyperPotion))
	assert.Zero(t, bag.Count(dex.ItemPotion))

	tm.Bag = map[string]int{"Leftovers": 1}
	_, _, err = tm.Build(d)
	assert.ErrorIs(t, err, team.ErrUnknownItem)

	tm.Bag = nil
	tm.Members = make([]team.Set, team.MaxTeamSize+1)
	for i := range tm.Members {
		tm.Members[i] = member
	}
	_, _, err = tm.Build(d)
	assert.ErrorIs(t, err, team.ErrInvalidSet)

	tm.Members = nil
	_, _, err = tm.Build(d)
	assert.ErrorIs(t, err, team.ErrInvalidSet)
}

func TestProperty_BuildIsAtFullHPWithPositiveStats(t *testing.T) {
	d := testDex(t)
	species := []string{"pikachu", "garchomp", "blissey", "shedinja", "ferrothorn", "gengar"}
	natures := []string{"hardy", "adamant", "timid", "bold", "modest", "jolly"}
	rapid.Check(t, func(rt *rapid.T) {
		s := team.Set{
			Species: rapid.SampledFrom(species).Draw(rt, "species"),
			Level:   rapid.IntRange(team.MinLevel, team.MaxLevel).Draw(rt, "level"),
			Nature:  rapid.SampledFrom(natures).Draw(rt, "nature"),
			IVs:     team.Spread{team.KeySpeed: rapid.IntRange(0, team.MaxIV).Draw(rt, "iv")},
			EVs:     team.Spread{team.KeyHP: rapid.IntRange(0, team.MaxEV).Draw(rt, "ev")},
			Moves:   []string{"Tackle"},
		}
		c, err := team.Build(&s, d)
		if err != nil {
			rt.Fatalf("Build: %v", err)
		}
		if c.HP <= 0 || c.HP != c.MaxHP {
			rt.Fatalf("HP %d/%d", c.HP, c.MaxHP)
		}
		for _, v := range []int{c.Stats.Attack, c.Stats.Defense, c.Stats.SpecialAttack, c.Stats.SpecialDefense, c.Stats.Speed} {
			if v <= 0 {
				rt.Fatalf("non-positive stat in %+v", c.Stats)
			}
		}
	})
}

func TestLoadDirectory_ShippedTeams(t *testing.T) {
	teams, err := team.LoadDirectory("../../../content/teams")
	require.NoError(t, err)
	require.Contains(t, teams, "kanto")
	require.Contains(t, teams, "sinnoh")

	for name, tm := range teams {
		roster, _, err := tm.Build(testDex(t))
		require.NoError(t, err, name)
		assert.NotEmpty(t, roster)
	}
	_, bag, err := teams["sinnoh"].Build(testDex(t))
	require.NoError(t, err)
	assert.Equal(t, 2, bag.Count(dex.ItemPotion))
	assert.Equal(t, 1, bag.Count(dex.ItemFullHeal))
}

func TestParseYAML_RejectsUnknownFields(t *testing.T) {
	_, err := team.ParseYAML([]byte("name: x\nmembers: []\ncolour: red\n"))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := team.LoadFile("does/not/exist.yaml")
	assert.Error(t, err)
}
