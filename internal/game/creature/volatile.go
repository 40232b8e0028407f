package creature

import (
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// MinStage and MaxStage bound every stat stage.
const (
	MinStage = -6
	MaxStage = 6
)

// Kind tags a volatile effect.
type Kind int

const (
	KindAbilityChange Kind = iota + 1
	KindAbilitySuppression
	KindAquaRing
	KindBind
	KindConfusion
	KindCurse
	KindDisable
	KindEmbargo
	KindEncore
	KindFlinch
	KindFocusEnergy
	KindHealBlock
	KindIngrain
	KindLaserFocus
	KindLeechSeed
	KindPerishSong
	KindStockpile
	KindSubstitute
	KindTaunt
	KindThroatChop
	KindTorment
	KindToxic
	KindUproar
	KindYawn

	// Kinds below have no designed payload yet. Volatile.Add refuses them.
	KindTransform
	KindTypeChange
	KindImprison
	KindInfatuation
	KindTelekinesis
	KindOctolock
)

var kindNames = map[Kind]string{
	KindAbilityChange:      "ability_change",
	KindAbilitySuppression: "ability_suppression",
	KindAquaRing:           "aqua_ring",
	KindBind:               "bind",
	KindConfusion:          "confusion",
	KindCurse:              "curse",
	KindDisable:            "disable",
	KindEmbargo:            "embargo",
	KindEncore:             "encore",
	KindFlinch:             "flinch",
	KindFocusEnergy:        "focus_energy",
	KindHealBlock:          "heal_block",
	KindIngrain:            "ingrain",
	KindLaserFocus:         "laser_focus",
	KindLeechSeed:          "leech_seed",
	KindPerishSong:         "perish_song",
	KindStockpile:          "stockpile",
	KindSubstitute:         "substitute",
	KindTaunt:              "taunt",
	KindThroatChop:         "throat_chop",
	KindTorment:            "torment",
	KindToxic:              "toxic",
	KindUproar:             "uproar",
	KindYawn:               "yawn",
	KindTransform:          "transform",
	KindTypeChange:         "type_change",
	KindImprison:           "imprison",
	KindInfatuation:        "infatuation",
	KindTelekinesis:        "telekinesis",
	KindOctolock:           "octolock",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Designed reports whether the kind has a defined payload and can be added.
func (k Kind) Designed() bool {
	return k >= KindAbilityChange && k < KindTransform
}

// Effect is one volatile effect on a creature.
type Effect struct {
	Kind Kind
	// Magnitude carries the kind's amount: substitute HP, stockpile count,
	// toxic counter.
	Magnitude int
	// Turns is the remaining duration. Zero means the effect has no counter
	// and lasts until removed or until switch-out.
	Turns int
	// Ability is the replacement ability of KindAbilityChange.
	Ability dex.Ability
	// Move is the locked or disabled move of KindEncore and KindDisable.
	Move dex.MoveID
}

// Volatile is the state a creature loses on switch-out: stat stages and
// volatile effects. It is not safe for concurrent use.
//
// Invariant: every stage is in [MinStage, MaxStage]; no two effects share a Kind.
type Volatile struct {
	stages  [dex.NumStages]int
	effects []Effect
}

// Stage returns the current stage of stat.
func (v *Volatile) Stage(stat dex.Stat) int {
	return v.stages[stat]
}

// ChangeStage adds delta to stat's stage, clamping to [MinStage, MaxStage].
//
// Postcondition: returns the delta actually applied, which is 0 when the
// stage was already at the bound in the direction of change.
func (v *Volatile) ChangeStage(stat dex.Stat, delta int) int {
	old := v.stages[stat]
	next := min(max(old+delta, MinStage), MaxStage)
	v.stages[stat] = next
	return next - old
}

// SetStage overwrites stat's stage, clamping to [MinStage, MaxStage].
func (v *Volatile) SetStage(stat dex.Stat, value int) {
	v.stages[stat] = min(max(value, MinStage), MaxStage)
}

// Stages returns a copy of every stage.
func (v *Volatile) Stages() [dex.NumStages]int { return v.stages }

// ResetStages sets every stage to zero.
func (v *Volatile) ResetStages() { v.stages = [dex.NumStages]int{} }

// Add appends e unless an effect of the same kind is present or the kind is
// not designed.
//
// Postcondition: returns true iff e was added.
func (v *Volatile) Add(e Effect) bool {
	if !e.Kind.Designed() || v.Has(e.Kind) {
		return false
	}
	v.effects = append(v.effects, e)
	return true
}

// Has reports whether an effect of kind k is present.
func (v *Volatile) Has(k Kind) bool {
	_, ok := v.Get(k)
	return ok
}

// Get returns the effect of kind k.
func (v *Volatile) Get(k Kind) (Effect, bool) {
	return v.Find(func(e Effect) bool { return e.Kind == k })
}

// Find returns the first effect matching pred, in insertion order.
func (v *Volatile) Find(pred func(Effect) bool) (Effect, bool) {
	for _, e := range v.effects {
		if pred(e) {
			return e, true
		}
	}
	return Effect{}, false
}

// Update replaces the stored effect of e.Kind with e. It reports false when
// no effect of that kind is present.
func (v *Volatile) Update(e Effect) bool {
	for i := range v.effects {
		if v.effects[i].Kind == e.Kind {
			v.effects[i] = e
			return true
		}
	}
	return false
}

// Remove deletes the effect of kind k if present.
func (v *Volatile) Remove(k Kind) {
	for i := range v.effects {
		if v.effects[i].Kind == k {
			v.effects = append(v.effects[:i], v.effects[i+1:]...)
			return
		}
	}
}

// Effects returns a copy of the effect list in insertion order.
func (v *Volatile) Effects() []Effect {
	out := make([]Effect, len(v.effects))
	copy(out, v.effects)
	return out
}

// Tick decrements every counted effect by one turn and removes those that
// reach zero. Effects without a counter are untouched.
//
// Postcondition: for every kind in the returned slice, Has(kind) is false.
func (v *Volatile) Tick() []Kind {
	var expired []Kind
	kept := v.effects[:0]
	for _, e := range v.effects {
		if e.Turns > 0 {
			e.Turns--
			if e.Turns == 0 {
				expired = append(expired, e.Kind)
				continue
			}
		}
		kept = append(kept, e)
	}
	v.effects = kept
	return expired
}

// Clear discards all stages and effects.
func (v *Volatile) Clear() {
	v.stages = [dex.NumStages]int{}
	v.effects = nil
}

// Clone returns an independent copy.
func (v *Volatile) Clone() Volatile {
	return Volatile{stages: v.stages, effects: v.Effects()}
}
