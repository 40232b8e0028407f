package dex

// Item identifies a held or bag item by its normalised id. The zero value
// means "no item".
type Item string

// Held items with simulator behaviour.
const (
	ItemNone Item = ""

	ItemAssaultVest     Item = "assaultvest"
	ItemChoiceBand      Item = "choiceband"
	ItemChoiceScarf     Item = "choicescarf"
	ItemChoiceSpecs     Item = "choicespecs"
	ItemDeepSeaScale    Item = "deepseascale"
	ItemDeepSeaTooth    Item = "deepseatooth"
	ItemLightBall       Item = "lightball"
	ItemMetalPowder     Item = "metalpowder"
	ItemQuickPowder     Item = "quickpowder"
	ItemLifeOrb         Item = "lifeorb"
	ItemMuscleBand      Item = "muscleband"
	ItemWiseGlasses     Item = "wiseglasses"
	ItemFocusSash       Item = "focussash"
	ItemFocusBand       Item = "focusband"
	ItemLightClay       Item = "lightclay"
	ItemDampRock        Item = "damprock"
	ItemHeatRock        Item = "heatrock"
	ItemIcyRock         Item = "icyrock"
	ItemSmoothRock      Item = "smoothrock"
	ItemTerrainExtender Item = "terrainextender"
	ItemProtectivePads  Item = "protectivepads"
	ItemLeftovers       Item = "leftovers"
	ItemHeavyDutyBoots  Item = "heavydutyboots"
)

// Bag items usable as a turn action.
const (
	ItemPotion      Item = "potion"
	ItemSuperPotion Item = "superpotion"
	ItemHyperPotion Item = "hyperpotion"
	ItemMaxPotion   Item = "maxpotion"
	ItemFullRestore Item = "fullrestore"
	ItemFullHeal    Item = "fullheal"
	ItemXAttack     Item = "xattack"
	ItemXDefense    Item = "xdefense"
	ItemXSpAtk      Item = "xspatk"
	ItemXSpDef      Item = "xspdef"
	ItemXSpeed      Item = "xspeed"
)

// typeBoosters maps held items to the move type they boost by 4505/4096.
var typeBoosters = map[Item]Type{
	"silkscarf":    TypeNormal,
	"charcoal":     TypeFire,
	"mysticwater":  TypeWater,
	"magnet":       TypeElectric,
	"miracleseed":  TypeGrass,
	"nevermeltice": TypeIce,
	"blackbelt":    TypeFighting,
	"poisonbarb":   TypePoison,
	"softsand":     TypeGround,
	"sharpbeak":    TypeFlying,
	"twistedspoon": TypePsychic,
	"silverpowder": TypeBug,
	"hardstone":    TypeRock,
	"spelltag":     TypeGhost,
	"dragonfang":   TypeDragon,
	"blackglasses": TypeDark,
	"metalcoat":    TypeSteel,
	"fairyfeather": TypeFairy,
}

// BoostedType reports the move type a type-boosting held item powers up.
func (i Item) BoostedType() (Type, bool) {
	t, ok := typeBoosters[i]
	return t, ok
}

// BagItems lists every item a controller may use as a turn action.
var BagItems = []Item{
	ItemPotion, ItemSuperPotion, ItemHyperPotion, ItemMaxPotion, ItemFullRestore,
	ItemFullHeal, ItemXAttack, ItemXDefense, ItemXSpAtk, ItemXSpDef, ItemXSpeed,
}

// IsBagItem reports whether i can be used as a turn action.
func (i Item) IsBagItem() bool {
	for _, b := range BagItems {
		if b == i {
			return true
		}
	}
	return false
}
