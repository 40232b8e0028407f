package dex

import "fmt"

// Effect tags a move's secondary effect. Tags are plain data; the simulator
// keeps a registry of handlers keyed by tag and treats unknown tags as
// no-ops, so data files may reference effects that have no behaviour yet.
type Effect string

// EffectNone means the move has no secondary effect.
const EffectNone Effect = ""

// Status infliction.
const (
	EffectBurn        Effect = "burn"
	EffectFreeze      Effect = "freeze"
	EffectParalyze    Effect = "paralyze"
	EffectPoison      Effect = "poison"
	EffectBadlyPoison Effect = "badly_poison"
	EffectSleep       Effect = "sleep"
	EffectTriAttack   Effect = "tri_attack"
	EffectConfuse     Effect = "confuse"
	EffectFlinch      Effect = "flinch"
)

// HP manipulation.
const (
	EffectDrainHalf     Effect = "drain_half"
	EffectFaintUser     Effect = "faint_user"
	EffectHealHalf      Effect = "heal_half"
	EffectRest          Effect = "rest"
	EffectPainSplit     Effect = "pain_split"
	EffectRecoilQuarter Effect = "recoil_quarter"
	EffectRecoilThird   Effect = "recoil_third"
	EffectRecoilHalf    Effect = "recoil_half"
	EffectBellyDrum     Effect = "belly_drum"
	EffectSubstitute    Effect = "substitute"
)

// Multi-stat changes.
const (
	EffectBulkUp      Effect = "bulk_up"
	EffectCalmMind    Effect = "calm_mind"
	EffectCoil        Effect = "coil"
	EffectCottonGuard Effect = "cotton_guard"
	EffectDragonDance Effect = "dragon_dance"
	EffectGrowth      Effect = "growth"
	EffectHoneClaws   Effect = "hone_claws"
	EffectQuiverDance Effect = "quiver_dance"
	EffectShellSmash  Effect = "shell_smash"
	EffectShiftGear   Effect = "shift_gear"
	EffectWorkUp      Effect = "work_up"
	EffectCloseCombat Effect = "close_combat"
	EffectSuperpower  Effect = "superpower"
	EffectVCreate     Effect = "v_create"
	EffectCurse       Effect = "curse"
	EffectHaze        Effect = "haze"
	EffectClearTarget Effect = "reset_target_stats"
	EffectRockTomb    Effect = "rock_tomb"
)

// Volatile effects on the user or target.
const (
	EffectAquaRing    Effect = "aqua_ring"
	EffectDisable     Effect = "disable"
	EffectEncore      Effect = "encore"
	EffectFocusEnergy Effect = "focus_energy"
	EffectGastroAcid  Effect = "gastro_acid"
	EffectIngrain     Effect = "ingrain"
	EffectLeechSeed   Effect = "leech_seed"
	EffectPerishSong  Effect = "perish_song"
	EffectTaunt       Effect = "taunt"
	EffectTransform   Effect = "transform"
)

// Side effects and hazards.
const (
	EffectAuroraVeil  Effect = "aurora_veil"
	EffectDefog       Effect = "defog"
	EffectLightScreen Effect = "light_screen"
	EffectLuckyChant  Effect = "lucky_chant"
	EffectMist        Effect = "mist"
	EffectRapidSpin   Effect = "rapid_spin"
	EffectReflect     Effect = "reflect"
	EffectSafeguard   Effect = "safeguard"
	EffectSpikes      Effect = "spikes"
	EffectStealthRock Effect = "stealth_rock"
	EffectStickyWeb   Effect = "sticky_web"
	EffectTailwind    Effect = "tailwind"
	EffectToxicSpikes Effect = "toxic_spikes"
)

// Weather and terrain.
const (
	EffectRain            Effect = "rain"
	EffectSun             Effect = "sun"
	EffectSandstorm       Effect = "sandstorm"
	EffectHail            Effect = "hail"
	EffectSnow            Effect = "snow"
	EffectElectricTerrain Effect = "electric_terrain"
	EffectGrassyTerrain   Effect = "grassy_terrain"
	EffectMistyTerrain    Effect = "misty_terrain"
	EffectPsychicTerrain  Effect = "psychic_terrain"
)

// Subject names whose stages a single-stat effect changes.
type Subject string

const (
	OnUser   Subject = "user"
	OnTarget Subject = "target"
)

// StageEffect builds the tag for a single-stat stage change, e.g.
// StageEffect(OnUser, Attack, 2) is "raise_user_attack_2" and
// StageEffect(OnTarget, Speed, -1) is "lower_target_speed_1".
//
// Precondition: delta is non-zero.
func StageEffect(who Subject, stat Stat, delta int) Effect {
	if delta == 0 {
		panic("dex: StageEffect called with delta 0")
	}
	verb := "raise"
	if delta < 0 {
		verb = "lower"
		delta = -delta
	}
	return Effect(fmt.Sprintf("%s_%s_%s_%d", verb, who, stat, delta))
}
