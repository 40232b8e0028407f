package sim

import (
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// EffectContext is everything a secondary effect may read or mutate.
type EffectContext struct {
	User       *battle.Side
	Target     *battle.Side
	Conditions *battle.Conditions
	// Damage is the HP the triggering hit removed, 0 for status moves.
	Damage int
}

// EffectHandler applies one secondary effect.
type EffectHandler func(s *Simulator, ec *EffectContext)

// ApplySecondaryEffect dispatches tag. Tags without a handler are a no-op.
//
// Precondition: user and target are the two sides of the battle.
func (s *Simulator) ApplySecondaryEffect(tag dex.Effect, user, target *battle.Side, cond *battle.Conditions, damage int) {
	if tag == dex.EffectNone {
		return
	}
	h, ok := s.effects[tag]
	if !ok {
		s.logger.Debug("effect not implemented")
		return
	}
	h(s, &EffectContext{User: user, Target: target, Conditions: cond, Damage: damage})
}

var (
	confusionTurns = dice.MustParse("1d4+1")
	sleepTurns     = dice.MustParse("1d3")
	oldSleepTurns  = dice.MustParse("1d7")
)

// StageChange is one stat stage delta.
type StageChange struct {
	Stat  dex.Stat
	Delta int
}

func defaultEffects() map[dex.Effect]EffectHandler {
	m := map[dex.Effect]EffectHandler{
		dex.EffectBurn:        inflictOnTarget(creature.StatusBurn),
		dex.EffectFreeze:      inflictOnTarget(creature.StatusFreeze),
		dex.EffectParalyze:    inflictOnTarget(creature.StatusParalysis),
		dex.EffectPoison:      inflictOnTarget(creature.StatusPoison),
		dex.EffectBadlyPoison: inflictOnTarget(creature.StatusBadlyPoison),
		dex.EffectSleep:       inflictOnTarget(creature.StatusSleep),
		dex.EffectTriAttack:   triAttack,
		dex.EffectConfuse:     confuse,
		dex.EffectFlinch:      addToTarget(creature.KindFlinch, 1),

		dex.EffectDrainHalf:     drainHalf,
		dex.EffectFaintUser:     faintUser,
		dex.EffectHealHalf:      healHalf,
		dex.EffectRest:          rest,
		dex.EffectPainSplit:     painSplit,
		dex.EffectRecoilQuarter: recoil(4),
		dex.EffectRecoilThird:   recoil(3),
		dex.EffectRecoilHalf:    recoil(2),
		dex.EffectBellyDrum:     bellyDrum,
		dex.EffectSubstitute:    substitute,

		dex.EffectBulkUp:      userStages(StageChange{dex.Attack, 1}, StageChange{dex.Defense, 1}),
		dex.EffectCalmMind:    userStages(StageChange{dex.SpecialAttack, 1}, StageChange{dex.SpecialDefense, 1}),
		dex.EffectCoil:        userStages(StageChange{dex.Attack, 1}, StageChange{dex.Defense, 1}, StageChange{dex.Accuracy, 1}),
		dex.EffectCottonGuard: userStages(StageChange{dex.Defense, 3}),
		dex.EffectDragonDance: userStages(StageChange{dex.Attack, 1}, StageChange{dex.Speed, 1}),
		dex.EffectHoneClaws:   userStages(StageChange{dex.Attack, 1}, StageChange{dex.Accuracy, 1}),
		dex.EffectQuiverDance: userStages(StageChange{dex.SpecialAttack, 1}, StageChange{dex.SpecialDefense, 1}, StageChange{dex.Speed, 1}),
		dex.EffectShellSmash: userStages(
			StageChange{dex.Defense, -1}, StageChange{dex.SpecialDefense, -1},
			StageChange{dex.Attack, 2}, StageChange{dex.SpecialAttack, 2}, StageChange{dex.Speed, 2},
		),
		dex.EffectShiftGear:   userStages(StageChange{dex.Attack, 1}, StageChange{dex.Speed, 2}),
		dex.EffectWorkUp:      userStages(StageChange{dex.Attack, 1}, StageChange{dex.SpecialAttack, 1}),
		dex.EffectCloseCombat: userStages(StageChange{dex.Defense, -1}, StageChange{dex.SpecialDefense, -1}),
		dex.EffectSuperpower:  userStages(StageChange{dex.Attack, -1}, StageChange{dex.Defense, -1}),
		dex.EffectVCreate:     userStages(StageChange{dex.Defense, -1}, StageChange{dex.SpecialDefense, -1}, StageChange{dex.Speed, -1}),
		dex.EffectRockTomb:    targetStages(StageChange{dex.Speed, -1}),
		dex.EffectGrowth:      growth,
		dex.EffectCurse:       curse,
		dex.EffectHaze:        haze,
		dex.EffectClearTarget: clearTargetStages,

		dex.EffectAquaRing:    addToUser(creature.KindAquaRing, 0),
		dex.EffectIngrain:     addToUser(creature.KindIngrain, 0),
		dex.EffectFocusEnergy: addToUser(creature.KindFocusEnergy, 0),
		dex.EffectGastroAcid:  addToTarget(creature.KindAbilitySuppression, 0),
		dex.EffectTaunt:       addToTarget(creature.KindTaunt, 3),
		dex.EffectDisable:     lockLastMove(creature.KindDisable, 4),
		dex.EffectEncore:      lockLastMove(creature.KindEncore, 3),
		dex.EffectLeechSeed:   leechSeed,
		dex.EffectPerishSong:  perishSong,
		dex.EffectTransform:   addToUser(creature.KindTransform, 0),

		dex.EffectLightScreen: screen((*battle.SideEffects).SetLightScreen),
		dex.EffectReflect:     screen((*battle.SideEffects).SetReflect),
		dex.EffectAuroraVeil:  auroraVeil,
		dex.EffectSafeguard:   userSide((*battle.SideEffects).SetSafeguard, 5),
		dex.EffectMist:        userSide((*battle.SideEffects).SetMist, 5),
		dex.EffectTailwind:    userSide((*battle.SideEffects).SetTailwind, 5),
		dex.EffectLuckyChant:  userSide((*battle.SideEffects).SetLuckyChant, 5),
		dex.EffectSpikes:      spikes,
		dex.EffectToxicSpikes: toxicSpikes,
		dex.EffectStealthRock: stealthRock,
		dex.EffectStickyWeb:   stickyWeb,
		dex.EffectRapidSpin:   rapidSpin,
		dex.EffectDefog:       defog,

		dex.EffectRain:            weather(battle.WeatherRain),
		dex.EffectSun:             weather(battle.WeatherSun),
		dex.EffectSandstorm:       weather(battle.WeatherSandstorm),
		dex.EffectHail:            weather(battle.WeatherHail),
		dex.EffectSnow:            weather(battle.WeatherSnow),
		dex.EffectElectricTerrain: terrain(battle.TerrainElectric),
		dex.EffectGrassyTerrain:   terrain(battle.TerrainGrassy),
		dex.EffectMistyTerrain:    terrain(battle.TerrainMisty),
		dex.EffectPsychicTerrain:  terrain(battle.TerrainPsychic),
	}

	for stat := dex.Attack; stat < dex.NumStages; stat++ {
		for n := 1; n <= 3; n++ {
			m[dex.StageEffect(dex.OnUser, stat, n)] = userStages(StageChange{stat, n})
			m[dex.StageEffect(dex.OnUser, stat, -n)] = userStages(StageChange{stat, -n})
			m[dex.StageEffect(dex.OnTarget, stat, n)] = targetStages(StageChange{stat, n})
			m[dex.StageEffect(dex.OnTarget, stat, -n)] = targetStages(StageChange{stat, -n})
		}
	}
	return m
}

// Status infliction.

func inflictOnTarget(st creature.Status) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		s.Inflict(ec.Target, st, ec.User, ec.Conditions)
	}
}

func triAttack(s *Simulator, ec *EffectContext) {
	choices := []creature.Status{creature.StatusBurn, creature.StatusFreeze, creature.StatusParalysis}
	s.Inflict(ec.Target, choices[s.roll.Intn("tri attack", len(choices))], ec.User, ec.Conditions)
}

func confuse(s *Simulator, ec *EffectContext) {
	c := ec.Target.ActiveCreature()
	if c.Fainted() || behindSubstitute(ec) {
		return
	}
	if ec.Target.Effects.Safeguard() > 0 && ec.Target != ec.User {
		return
	}
	turns := s.roll.Roll(confusionTurns).Total()
	if c.Volatile.Add(creature.Effect{Kind: creature.KindConfusion, Turns: turns}) {
		s.emit(ec.Target.ID, EventVolatile, "%s became confused", c.Name)
	}
}

// Inflict applies a non-volatile status to side's active creature if
// nothing prevents it. from is the inflicting side, or nil for the field.
//
// Postcondition: returns true iff the status was applied.
func (s *Simulator) Inflict(side *battle.Side, st creature.Status, from *battle.Side, cond *battle.Conditions) bool {
	c := side.ActiveCreature()
	if c.Fainted() || c.Status != creature.StatusNone {
		return false
	}
	if from != nil && from != side {
		if side.Effects.Safeguard() > 0 {
			return false
		}
		if sub, ok := c.Volatile.Get(creature.KindSubstitute); ok && sub.Magnitude > 0 {
			return false
		}
	}
	if s.grounded(c) && cond.IsTerrain(battle.TerrainMisty) {
		return false
	}
	switch st {
	case creature.StatusBurn:
		if c.HasType(dex.TypeFire) {
			return false
		}
	case creature.StatusFreeze:
		if c.HasType(dex.TypeIce) || cond.Sunny() {
			return false
		}
	case creature.StatusParalysis:
		if s.gen >= 6 && c.HasType(dex.TypeElectric) {
			return false
		}
	case creature.StatusPoison, creature.StatusBadlyPoison:
		if c.HasType(dex.TypePoison) || c.HasType(dex.TypeSteel) {
			return false
		}
	case creature.StatusSleep:
		if s.grounded(c) && cond.IsTerrain(battle.TerrainElectric) {
			return false
		}
	}
	if !c.Inflict(st) {
		return false
	}
	if st == creature.StatusSleep {
		expr := sleepTurns
		if s.gen <= 4 {
			expr = oldSleepTurns
		}
		c.SleepTurns = s.roll.Roll(expr).Total()
	}
	s.emit(side.ID, EventStatus, "%s is afflicted with %s", c.Name, st)
	return true
}

func behindSubstitute(ec *EffectContext) bool {
	if ec.Target == ec.User {
		return false
	}
	sub, ok := ec.Target.ActiveCreature().Volatile.Get(creature.KindSubstitute)
	return ok && sub.Magnitude > 0
}

// HP manipulation.

func drainHalf(s *Simulator, ec *EffectContext) {
	if ec.Damage <= 0 {
		return
	}
	u := ec.User.ActiveCreature()
	if healed := u.Heal(fraction(ec.Damage, 2)); healed > 0 {
		s.emit(ec.User.ID, EventHeal, "%s drained %d HP", u.Name, healed)
	}
}

func faintUser(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	if !u.Fainted() {
		u.Faint()
		s.emit(ec.User.ID, EventFaint, "%s fainted", u.Name)
	}
}

func healHalf(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	if healed := u.Heal((u.MaxHP + 1) / 2); healed > 0 {
		s.emit(ec.User.ID, EventHeal, "%s restored %d HP", u.Name, healed)
	}
}

func rest(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	if u.FullHP() || u.Fainted() {
		return
	}
	u.Cure()
	u.Status = creature.StatusSleep
	u.SleepTurns = 2
	u.Heal(u.MaxHP)
	s.emit(ec.User.ID, EventHeal, "%s slept and became healthy", u.Name)
}

func painSplit(s *Simulator, ec *EffectContext) {
	u, t := ec.User.ActiveCreature(), ec.Target.ActiveCreature()
	if u.Fainted() || t.Fainted() {
		return
	}
	avg := (u.HP + t.HP) / 2
	u.HP = min(avg, u.MaxHP)
	t.HP = min(avg, t.MaxHP)
	s.emit(ec.User.ID, EventHeal, "the battlers shared their pain")
}

func recoil(den int) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		if ec.Damage <= 0 {
			return
		}
		u := ec.User.ActiveCreature()
		taken := u.TakeDamage(fraction(ec.Damage, den))
		s.emit(ec.User.ID, EventDamage, "%s is damaged by recoil (%d)", u.Name, taken)
		if u.Fainted() {
			s.emit(ec.User.ID, EventFaint, "%s fainted", u.Name)
		}
	}
}

func bellyDrum(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	cost := u.MaxHP / 2
	if u.HP <= cost || u.Volatile.Stage(dex.Attack) == creature.MaxStage {
		return
	}
	u.TakeDamage(cost)
	u.Volatile.SetStage(dex.Attack, creature.MaxStage)
	s.emit(ec.User.ID, EventStage, "%s cut its own HP and maximized attack", u.Name)
}

func substitute(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	cost := u.MaxHP / 4
	if cost == 0 || u.HP <= cost || u.Volatile.Has(creature.KindSubstitute) {
		return
	}
	u.TakeDamage(cost)
	u.Volatile.Add(creature.Effect{Kind: creature.KindSubstitute, Magnitude: cost})
	s.emit(ec.User.ID, EventVolatile, "%s put in a substitute", u.Name)
}

// Stat stages.

// ChangeStages applies stage changes to side's active creature. Drops
// caused by the opposing side are blocked by mist.
func (s *Simulator) ChangeStages(side *battle.Side, byOpponent bool, changes ...StageChange) {
	c := side.ActiveCreature()
	if c.Fainted() {
		return
	}
	for _, ch := range changes {
		if ch.Delta < 0 && byOpponent && side.Effects.Mist() > 0 {
			s.emit(side.ID, EventStage, "%s is protected by mist", c.Name)
			continue
		}
		if applied := c.Volatile.ChangeStage(ch.Stat, ch.Delta); applied != 0 {
			s.emit(side.ID, EventStage, "%s %s %+d", c.Name, ch.Stat, applied)
		}
	}
}

func userStages(changes ...StageChange) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		s.ChangeStages(ec.User, false, changes...)
	}
}

func targetStages(changes ...StageChange) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		if behindSubstitute(ec) {
			return
		}
		s.ChangeStages(ec.Target, ec.Target != ec.User, changes...)
	}
}

func growth(s *Simulator, ec *EffectContext) {
	n := 1
	if ec.Conditions.Sunny() {
		n = 2
	}
	s.ChangeStages(ec.User, false, StageChange{dex.Attack, n}, StageChange{dex.SpecialAttack, n})
}

func curse(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	if !u.HasType(dex.TypeGhost) {
		s.ChangeStages(ec.User, false, StageChange{dex.Speed, -1}, StageChange{dex.Attack, 1}, StageChange{dex.Defense, 1})
		return
	}
	t := ec.Target.ActiveCreature()
	if t.Fainted() || t.Volatile.Has(creature.KindCurse) {
		return
	}
	u.TakeDamage(u.MaxHP / 2)
	t.Volatile.Add(creature.Effect{Kind: creature.KindCurse})
	s.emit(ec.User.ID, EventVolatile, "%s laid a curse on %s", u.Name, t.Name)
	if u.Fainted() {
		s.emit(ec.User.ID, EventFaint, "%s fainted", u.Name)
	}
}

func haze(s *Simulator, ec *EffectContext) {
	ec.User.ActiveCreature().Volatile.ResetStages()
	ec.Target.ActiveCreature().Volatile.ResetStages()
	s.emit(ec.User.ID, EventStage, "all stat changes were eliminated")
}

func clearTargetStages(s *Simulator, ec *EffectContext) {
	t := ec.Target.ActiveCreature()
	if t.Fainted() {
		return
	}
	t.Volatile.ResetStages()
	s.emit(ec.Target.ID, EventStage, "%s's stat changes were removed", t.Name)
}

// Volatile effects.

func addToUser(kind creature.Kind, turns int) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		u := ec.User.ActiveCreature()
		if u.Volatile.Add(creature.Effect{Kind: kind, Turns: turns}) {
			s.emit(ec.User.ID, EventVolatile, "%s gained %s", u.Name, kind)
		}
	}
}

func addToTarget(kind creature.Kind, turns int) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		t := ec.Target.ActiveCreature()
		if t.Fainted() || behindSubstitute(ec) {
			return
		}
		if t.Volatile.Add(creature.Effect{Kind: kind, Turns: turns}) {
			s.emit(ec.Target.ID, EventVolatile, "%s is affected by %s", t.Name, kind)
		}
	}
}

func lockLastMove(kind creature.Kind, turns int) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		t := ec.Target.ActiveCreature()
		if t.Fainted() || t.LastMove == "" {
			return
		}
		if t.Volatile.Add(creature.Effect{Kind: kind, Turns: turns, Move: t.LastMove}) {
			s.emit(ec.Target.ID, EventVolatile, "%s is affected by %s (%s)", t.Name, kind, t.LastMove)
		}
	}
}

func leechSeed(s *Simulator, ec *EffectContext) {
	t := ec.Target.ActiveCreature()
	if t.HasType(dex.TypeGrass) {
		return
	}
	addToTarget(creature.KindLeechSeed, 0)(s, ec)
}

func perishSong(s *Simulator, ec *EffectContext) {
	for _, side := range []*battle.Side{ec.User, ec.Target} {
		c := side.ActiveCreature()
		if !c.Fainted() && c.Volatile.Add(creature.Effect{Kind: creature.KindPerishSong, Turns: 3}) {
			s.emit(side.ID, EventVolatile, "%s heard the perish song", c.Name)
		}
	}
}

// Side effects.

func screen(set func(*battle.SideEffects, int)) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		turns := 5
		if ec.User.ActiveCreature().Item == dex.ItemLightClay {
			turns = 8
		}
		set(&ec.User.Effects, turns)
		s.emit(ec.User.ID, EventField, "a screen went up for %d turns", turns)
	}
}

func auroraVeil(s *Simulator, ec *EffectContext) {
	if !ec.Conditions.Snowy() {
		return
	}
	screen((*battle.SideEffects).SetAuroraVeil)(s, ec)
}

func userSide(set func(*battle.SideEffects, int), turns int) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		set(&ec.User.Effects, turns)
		s.emit(ec.User.ID, EventField, "side condition set for %d turns", turns)
	}
}

func spikes(s *Simulator, ec *EffectContext) {
	if ec.Target.Effects.AddSpikes() {
		s.emit(ec.Target.ID, EventField, "spikes were scattered (%d)", ec.Target.Effects.Spikes())
	}
}

func toxicSpikes(s *Simulator, ec *EffectContext) {
	if ec.Target.Effects.AddToxicSpikes() {
		s.emit(ec.Target.ID, EventField, "toxic spikes were scattered (%d)", ec.Target.Effects.ToxicSpikes())
	}
}

func stealthRock(s *Simulator, ec *EffectContext) {
	if !ec.Target.Effects.StealthRock() {
		ec.Target.Effects.SetStealthRock(true)
		s.emit(ec.Target.ID, EventField, "pointed stones float in the air")
	}
}

func stickyWeb(s *Simulator, ec *EffectContext) {
	if !ec.Target.Effects.StickyWeb() {
		ec.Target.Effects.SetStickyWeb(true)
		s.emit(ec.Target.ID, EventField, "a sticky web spreads out")
	}
}

func rapidSpin(s *Simulator, ec *EffectContext) {
	u := ec.User.ActiveCreature()
	if u.Fainted() {
		return
	}
	ec.User.Effects.ClearHazards()
	u.Volatile.Remove(creature.KindLeechSeed)
	u.Volatile.Remove(creature.KindBind)
	s.emit(ec.User.ID, EventField, "%s blew away hazards", u.Name)
}

func defog(s *Simulator, ec *EffectContext) {
	ec.Target.Effects.ClearScreens()
	ec.Target.Effects.SetSafeguard(0)
	ec.Target.Effects.SetMist(0)
	ec.Target.Effects.ClearHazards()
	ec.User.Effects.ClearHazards()
	s.ChangeStages(ec.Target, true, StageChange{dex.Evasion, -1})
	s.emit(ec.User.ID, EventField, "the field was cleared")
}

// Weather and terrain.

func weather(w battle.Weather) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		s.SetWeather(ec.Conditions, w, ec.User, false)
	}
}

func terrain(t battle.Terrain) EffectHandler {
	return func(s *Simulator, ec *EffectContext) {
		s.SetTerrain(ec.Conditions, t, ec.User)
	}
}
