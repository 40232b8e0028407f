package veekun

// veekun numbers types, stats, classes, targets and flags; these tables map
// those numbers onto dex names.

var typeNames = map[int]string{
	1: "normal", 2: "fighting", 3: "flying", 4: "poison", 5: "ground", 6: "rock",
	7: "bug", 8: "ghost", 9: "steel", 10: "fire", 11: "water", 12: "grass",
	13: "electric", 14: "psychic", 15: "ice", 16: "dragon", 17: "dark", 18: "fairy",
}

const (
	statHP = iota + 1
	statAttack
	statDefense
	statSpecialAttack
	statSpecialDefense
	statSpeed
)

var natureStatNames = map[int]string{
	statAttack:         "attack",
	statDefense:        "defense",
	statSpecialAttack:  "special_attack",
	statSpecialDefense: "special_defense",
	statSpeed:          "speed",
}

var classNames = map[int]string{1: "status", 2: "physical", 3: "special"}

// Singles collapse the doubles targets: anything aimed at the user or its
// allies hits the user, and spread moves hit the one foe.
var targetNames = map[int]string{
	3: "self", 5: "self", 7: "self", 13: "self", 15: "self",
	4:  "ally_side",
	6:  "foe_side",
	12: "all", 14: "all",
}

var flagNames = map[int]string{
	1: "contact", 2: "charge", 3: "recharge", 4: "protect", 5: "reflectable",
	6: "snatch", 7: "mirror", 8: "punch", 9: "sound", 10: "gravity",
	11: "defrost", 12: "distance", 13: "heal", 14: "authentic", 15: "powder",
	16: "bite", 17: "pulse", 18: "ballistics", 19: "mental", 20: "non_sky_battle",
	21: "dance",
}

// englishLanguageID is the local_language_id of English names.
const englishLanguageID = 9
