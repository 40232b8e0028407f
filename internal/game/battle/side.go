package battle

import "github.com/cory-johannsen/monbattle/internal/game/creature"

// SideID names one of the two parties.
type SideID int

const (
	Side1 SideID = iota
	Side2
)

// Other returns the opposing side.
func (s SideID) Other() SideID { return 1 - s }

func (s SideID) String() string {
	if s == Side1 {
		return "side1"
	}
	return "side2"
}

// Caps on side counters.
const (
	MaxSpikes      = 3
	MaxToxicSpikes = 2
	MaxScreenTurns = 8
	MaxShortTurns  = 5
)

// SideEffects are the conditions attached to one side of the field. They
// persist across switches. Every counter is bounded; setters clamp.
type SideEffects struct {
	stealthRock bool
	stickyWeb   bool
	happyHour   bool
	spikes      int
	toxicSpikes int
	reflect     int
	lightScreen int
	auroraVeil  int
	safeguard   int
	mist        int
	tailwind    int
	luckyChant  int
}

func clamp(v, hi int) int { return min(max(v, 0), hi) }

func (e *SideEffects) StealthRock() bool { return e.stealthRock }
func (e *SideEffects) SetStealthRock(v bool) { e.stealthRock = v }
func (e *SideEffects) StickyWeb() bool { return e.stickyWeb }
func (e *SideEffects) SetStickyWeb(v bool) { e.stickyWeb = v }
func (e *SideEffects) HappyHour() bool { return e.happyHour }
func (e *SideEffects) SetHappyHour(v bool) { e.happyHour = v }

// Spikes returns the number of spikes layers, 0 to MaxSpikes.
func (e *SideEffects) Spikes() int { return e.spikes }

// AddSpikes adds one layer. It reports false when already at the cap.
func (e *SideEffects) AddSpikes() bool {
	if e.spikes >= MaxSpikes {
		return false
	}
	e.spikes++
	return true
}

// ToxicSpikes returns the number of toxic spikes layers, 0 to MaxToxicSpikes.
func (e *SideEffects) ToxicSpikes() int { return e.toxicSpikes }

// AddToxicSpikes adds one layer. It reports false when already at the cap.
func (e *SideEffects) AddToxicSpikes() bool {
	if e.toxicSpikes >= MaxToxicSpikes {
		return false
	}
	e.toxicSpikes++
	return true
}

// ClearToxicSpikes removes every toxic spikes layer.
func (e *SideEffects) ClearToxicSpikes() { e.toxicSpikes = 0 }

func (e *SideEffects) Reflect() int { return e.reflect }
func (e *SideEffects) SetReflect(turns int) { e.reflect = clamp(turns, MaxScreenTurns) }
func (e *SideEffects) LightScreen() int { return e.lightScreen }
func (e *SideEffects) SetLightScreen(turns int) { e.lightScreen = clamp(turns, MaxScreenTurns) }
func (e *SideEffects) AuroraVeil() int { return e.auroraVeil }
func (e *SideEffects) SetAuroraVeil(turns int) { e.auroraVeil = clamp(turns, MaxScreenTurns) }
func (e *SideEffects) Safeguard() int { return e.safeguard }
func (e *SideEffects) SetSafeguard(turns int) { e.safeguard = clamp(turns, MaxScreenTurns) }
func (e *SideEffects) Mist() int { return e.mist }
func (e *SideEffects) SetMist(turns int) { e.mist = clamp(turns, MaxScreenTurns) }
func (e *SideEffects) Tailwind() int { return e.tailwind }
func (e *SideEffects) SetTailwind(turns int) { e.tailwind = clamp(turns, MaxShortTurns) }
func (e *SideEffects) LuckyChant() int { return e.luckyChant }
func (e *SideEffects) SetLuckyChant(turns int) { e.luckyChant = clamp(turns, MaxShortTurns) }

// ClearHazards removes every entry hazard.
func (e *SideEffects) ClearHazards() {
	e.stealthRock = false
	e.stickyWeb = false
	e.spikes = 0
	e.toxicSpikes = 0
}

// ClearScreens removes reflect, light screen and aurora veil.
func (e *SideEffects) ClearScreens() {
	e.reflect = 0
	e.lightScreen = 0
	e.auroraVeil = 0
}

// HasHazards reports whether any entry hazard is set.
func (e *SideEffects) HasHazards() bool {
	return e.stealthRock || e.stickyWeb || e.spikes > 0 || e.toxicSpikes > 0
}

// Tick decrements every duration counter by one turn.
func (e *SideEffects) Tick() {
	for _, p := range []*int{&e.reflect, &e.lightScreen, &e.auroraVeil, &e.safeguard, &e.mist, &e.tailwind, &e.luckyChant} {
		if *p > 0 {
			*p--
		}
	}
}

// Side is one party: its roster, which member is active, its effects and
// its item bag.
//
// Invariant: 0 <= Active < len(Team).
type Side struct {
	ID      SideID
	Team    []*creature.Creature
	Active  int
	Effects SideEffects
	Bag     Bag
}

// ActiveCreature returns the creature currently on the field.
func (s *Side) ActiveCreature() *creature.Creature { return s.Team[s.Active] }

// Remaining counts non-fainted roster members.
func (s *Side) Remaining() int {
	n := 0
	for _, c := range s.Team {
		if !c.Fainted() {
			n++
		}
	}
	return n
}

// Defeated reports whether every roster member has fainted.
func (s *Side) Defeated() bool { return s.Remaining() == 0 }

// CanSwitchTo reports whether index i is a legal switch target: in range,
// not fainted and not already active.
func (s *Side) CanSwitchTo(i int) bool {
	return i >= 0 && i < len(s.Team) && i != s.Active && !s.Team[i].Fainted()
}

// SwitchTargets lists every legal switch target.
func (s *Side) SwitchTargets() []int {
	var out []int
	for i := range s.Team {
		if s.CanSwitchTo(i) {
			out = append(out, i)
		}
	}
	return out
}
