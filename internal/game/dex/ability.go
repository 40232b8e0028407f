package dex

// Ability identifies an ability by its normalised id. The zero value means
// "no ability", which is also what a suppressed ability reports.
type Ability string

// Abilities the simulator gives behaviour to. Any other id is legal data
// and simply has no effect.
const (
	AbilityNone Ability = ""

	// stat pipeline
	AbilityChlorophyll     Ability = "chlorophyll"
	AbilityFlowerGift      Ability = "flowergift"
	AbilityFurCoat         Ability = "furcoat"
	AbilityGorillaTactics  Ability = "gorillatactics"
	AbilityGrassPelt       Ability = "grasspelt"
	AbilityGuts            Ability = "guts"
	AbilityHadronEngine    Ability = "hadronengine"
	AbilityHugePower       Ability = "hugepower"
	AbilityHustle          Ability = "hustle"
	AbilityMarvelScale     Ability = "marvelscale"
	AbilityOrichalcumPulse Ability = "orichalcumpulse"
	AbilityPurePower       Ability = "purepower"
	AbilityQuickFeet       Ability = "quickfeet"
	AbilitySandRush        Ability = "sandrush"
	AbilitySlushRush       Ability = "slushrush"
	AbilitySolarPower      Ability = "solarpower"
	AbilitySurgeSurfer     Ability = "surgesurfer"
	AbilitySwiftSwim       Ability = "swiftswim"

	// damage
	AbilityIronFist     Ability = "ironfist"
	AbilityMegaLauncher Ability = "megalauncher"
	AbilityRivalry      Ability = "rivalry"
	AbilityStrongJaw    Ability = "strongjaw"
	AbilitySturdy       Ability = "sturdy"
	AbilityTechnician   Ability = "technician"
	AbilityLevitate     Ability = "levitate"

	// switching
	AbilityNaturalCure Ability = "naturalcure"
	AbilityRegenerator Ability = "regenerator"

	// entry
	AbilityDauntlessShield Ability = "dauntlessshield"
	AbilityDeltaStream     Ability = "deltastream"
	AbilityDesolateLand    Ability = "desolateland"
	AbilityDownload        Ability = "download"
	AbilityDrizzle         Ability = "drizzle"
	AbilityDrought         Ability = "drought"
	AbilityElectricSurge   Ability = "electricsurge"
	AbilityGrassySurge     Ability = "grassysurge"
	AbilityIntimidate      Ability = "intimidate"
	AbilityIntrepidSword   Ability = "intrepidsword"
	AbilityMistySurge      Ability = "mistysurge"
	AbilityPrimordialSea   Ability = "primordialsea"
	AbilityPsychicSurge    Ability = "psychicsurge"
	AbilitySandStream      Ability = "sandstream"
	AbilitySnowWarning     Ability = "snowwarning"
	AbilitySupersweetSyrup Ability = "supersweetsyrup"
	AbilityTrace           Ability = "trace"

	// contact
	AbilityEffectSpore  Ability = "effectspore"
	AbilityFlameBody    Ability = "flamebody"
	AbilityGooey        Ability = "gooey"
	AbilityIronBarbs    Ability = "ironbarbs"
	AbilityJustified    Ability = "justified"
	AbilityMummy        Ability = "mummy"
	AbilityPoisonPoint  Ability = "poisonpoint"
	AbilityRoughSkin    Ability = "roughskin"
	AbilityStatic       Ability = "static"
	AbilityTanglingHair Ability = "tanglinghair"
)
