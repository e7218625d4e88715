// Package stats defines the Anarchy Online stat catalog used across the
// toolkit, including the can-flag bits of stat 30 and the special attack
// group they gate.
package stats

import "fmt"

// ID identifies a single stat as used by game data. Items and characters
// reference stats by these numeric identifiers.
type ID int

// Character identity and ability stats.
const (
	BreedID      ID = 4
	Strength     ID = 16
	Agility      ID = 17
	Stamina      ID = 18
	Intelligence ID = 19
	Sense        ID = 20
	Psychic      ID = 21
	FactionID    ID = 33
	AggDefSlider ID = 51
	LevelID      ID = 54
	SexID        ID = 59
	ProfessionID ID = 60
)

// Item behavior stats.
const (
	CanFlags           ID = 30
	ArmorClasses       ID = 90 // first of the eight AC stats
	RechargeDelay      ID = 210
	ClipSize           ID = 212
	AddAllOffense      ID = 276
	AddAllDefense      ID = 277
	CriticalBonus      ID = 284
	MaxDamage          ID = 285
	MinDamage          ID = 286
	AttackRange        ID = 287
	AttackDelay        ID = 294
	BurstRecharge      ID = 374
	FullAutoRecharge   ID = 375
	DamageType         ID = 436
	InitiativeType     ID = 440
	MaxBeneficialSkill ID = 538
)

// Armor class stats. The DamageType stat of a weapon holds one of these
// identifiers, naming the armor class its hits are checked against.
const (
	ProjectileAC ID = 90
	MeleeAC      ID = 91
	EnergyAC     ID = 92
	ChemicalAC   ID = 93
	RadiationAC  ID = 94
	ColdAC       ID = 95
	PoisonAC     ID = 96
	FireAC       ID = 97
)

// Weapon skills. A weapon's attack stats reference one or more of these;
// the entry weighted at 100 drives the attack rating.
const (
	MartialArts  ID = 100
	MultiMelee   ID = 101
	OneHandBlunt ID = 102
	OneHandEdged ID = 103
	MeleeEnergy  ID = 104
	TwoHandEdged ID = 105
	Piercing     ID = 106
	TwoHandBlunt ID = 107
	SharpObjects ID = 108
	Grenade      ID = 109
	HeavyWeapons ID = 110
	Bow          ID = 111
	Pistol       ID = 112
	Rifle        ID = 113
	MGSMG        ID = 114
	Shotgun      ID = 115
	AssaultRifle ID = 116
)

// Initiative skills. The InitiativeType stat of a weapon holds one of the
// first three; nano-cast initiative never drives weapon speed.
const (
	MeleeInit    ID = 118
	RangedInit   ID = 119
	PhysicalInit ID = 120
	NanoCInit    ID = 149
)

// Special attack skills.
const (
	BrawlSkill       ID = 142
	DimachSkill      ID = 144
	SneakAttackSkill ID = 146
	FastAttackSkill  ID = 147
	BurstSkill       ID = 148
	FlingShotSkill   ID = 150
	AimedShotSkill   ID = 151
	FullAutoSkill    ID = 167
)

// Elemental damage modifier stats. The highest of these on a character is
// the flat add-damage bonus applied to special attacks that honor it.
const (
	ProjectileDamage ID = 278
	MeleeDamage      ID = 279
	EnergyDamage     ID = 280
	ChemicalDamage   ID = 281
	RadiationDamage  ID = 282
	ColdDamage       ID = 311
	NanoDamage       ID = 315
	FireDamage       ID = 316
	PoisonDamage     ID = 317
)

var names = map[ID]string{
	BreedID:            "Breed",
	Strength:           "Strength",
	Agility:            "Agility",
	Stamina:            "Stamina",
	Intelligence:       "Intelligence",
	Sense:              "Sense",
	Psychic:            "Psychic",
	FactionID:          "Side",
	AggDefSlider:       "Agg/Def",
	LevelID:            "Level",
	SexID:              "Sex",
	ProfessionID:       "Profession",
	CanFlags:           "Can",
	RechargeDelay:      "Recharge Delay",
	ClipSize:           "Clip Size",
	AddAllOffense:      "Add All Offense",
	AddAllDefense:      "Add All Defense",
	CriticalBonus:      "Critical Bonus",
	MaxDamage:          "Max Damage",
	MinDamage:          "Min Damage",
	AttackRange:        "Attack Range",
	AttackDelay:        "Attack Delay",
	BurstRecharge:      "Burst Recharge",
	FullAutoRecharge:   "Full Auto Recharge",
	DamageType:         "Damage Type",
	InitiativeType:     "Initiative Type",
	MaxBeneficialSkill: "Max Beneficial Skill",
	ProjectileAC:       "Projectile AC",
	MeleeAC:            "Melee AC",
	EnergyAC:           "Energy AC",
	ChemicalAC:         "Chemical AC",
	RadiationAC:        "Radiation AC",
	ColdAC:             "Cold AC",
	PoisonAC:           "Poison AC",
	FireAC:             "Fire AC",
	MartialArts:        "Martial Arts",
	MultiMelee:         "Multi Melee",
	OneHandBlunt:       "1h Blunt",
	OneHandEdged:       "1h Edged",
	MeleeEnergy:        "Melee Energy",
	TwoHandEdged:       "2h Edged",
	Piercing:           "Piercing",
	TwoHandBlunt:       "2h Blunt",
	SharpObjects:       "Sharp Objects",
	Grenade:            "Grenade",
	HeavyWeapons:       "Heavy Weapons",
	Bow:                "Bow",
	Pistol:             "Pistol",
	Rifle:              "Rifle",
	MGSMG:              "MG / SMG",
	Shotgun:            "Shotgun",
	AssaultRifle:       "Assault Rifle",
	MeleeInit:          "Melee Init",
	RangedInit:         "Ranged Init",
	PhysicalInit:       "Physical Init",
	NanoCInit:          "NanoC Init",
	BrawlSkill:         "Brawl",
	DimachSkill:        "Dimach",
	SneakAttackSkill:   "Sneak Attack",
	FastAttackSkill:    "Fast Attack",
	BurstSkill:         "Burst",
	FlingShotSkill:     "Fling Shot",
	AimedShotSkill:     "Aimed Shot",
	FullAutoSkill:      "Full Auto",
	ProjectileDamage:   "Projectile Damage",
	MeleeDamage:        "Melee Damage",
	EnergyDamage:       "Energy Damage",
	ChemicalDamage:     "Chemical Damage",
	RadiationDamage:    "Radiation Damage",
	ColdDamage:         "Cold Damage",
	NanoDamage:         "Nano Damage",
	FireDamage:         "Fire Damage",
	PoisonDamage:       "Poison Damage",
}

// Name returns the display name for id, or "Stat <n>" for identifiers
// outside the catalog.
func (id ID) Name() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("Stat %d", int(id))
}

// WeaponSkills lists the seventeen weapon skills in identifier order.
//
// Postcondition: Returns a fresh slice; callers may reorder it freely.
func WeaponSkills() []ID {
	return []ID{
		MartialArts, MultiMelee, OneHandBlunt, OneHandEdged, MeleeEnergy,
		TwoHandEdged, Piercing, TwoHandBlunt, SharpObjects, Grenade,
		HeavyWeapons, Bow, Pistol, Rifle, MGSMG, Shotgun, AssaultRifle,
	}
}

// SpecialSkills lists the eight special attack skills in identifier order.
//
// Postcondition: Returns a fresh slice; callers may reorder it freely.
func SpecialSkills() []ID {
	return []ID{
		BrawlSkill, DimachSkill, SneakAttackSkill, FastAttackSkill,
		BurstSkill, FlingShotSkill, AimedShotSkill, FullAutoSkill,
	}
}

// DamageModifiers lists the elemental damage modifier stats.
//
// Postcondition: Returns a fresh slice; callers may reorder it freely.
func DamageModifiers() []ID {
	return []ID{
		ProjectileDamage, MeleeDamage, EnergyDamage, ChemicalDamage,
		RadiationDamage, ColdDamage, NanoDamage, FireDamage, PoisonDamage,
	}
}

var skillNames = map[string]ID{
	"martial-arts":      MartialArts,
	"multi-melee":       MultiMelee,
	"1h-blunt":          OneHandBlunt,
	"1h-edged":          OneHandEdged,
	"melee-energy":      MeleeEnergy,
	"2h-edged":          TwoHandEdged,
	"piercing":          Piercing,
	"2h-blunt":          TwoHandBlunt,
	"sharp-objects":     SharpObjects,
	"grenade":           Grenade,
	"heavy-weapons":     HeavyWeapons,
	"bow":               Bow,
	"pistol":            Pistol,
	"rifle":             Rifle,
	"mg-smg":            MGSMG,
	"shotgun":           Shotgun,
	"assault-rifle":     AssaultRifle,
	"melee-init":        MeleeInit,
	"ranged-init":       RangedInit,
	"physical-init":     PhysicalInit,
	"nano-init":         NanoCInit,
	"brawl":             BrawlSkill,
	"dimach":            DimachSkill,
	"sneak-attack":      SneakAttackSkill,
	"fast-attack":       FastAttackSkill,
	"burst":             BurstSkill,
	"fling-shot":        FlingShotSkill,
	"aimed-shot":        AimedShotSkill,
	"full-auto":         FullAutoSkill,
	"strength":          Strength,
	"agility":           Agility,
	"stamina":           Stamina,
	"intelligence":      Intelligence,
	"sense":             Sense,
	"psychic":           Psychic,
	"add-all-offense":   AddAllOffense,
	"add-all-defense":   AddAllDefense,
	"projectile-damage": ProjectileDamage,
	"melee-damage":      MeleeDamage,
	"energy-damage":     EnergyDamage,
	"chemical-damage":   ChemicalDamage,
	"radiation-damage":  RadiationDamage,
	"cold-damage":       ColdDamage,
	"nano-damage":       NanoDamage,
	"fire-damage":       FireDamage,
	"poison-damage":     PoisonDamage,
}

// SkillByName resolves the lowercase hyphenated skill name used in profile
// and buff documents to its stat identifier.
//
// Precondition: name may be any string.
// Postcondition: Returns the identifier and true, or 0 and false when the
// name is not in the catalog.
func SkillByName(name string) (ID, bool) {
	id, ok := skillNames[name]
	return id, ok
}

var skillKeys = func() map[ID]string {
	keys := make(map[ID]string, len(skillNames))
	for name, id := range skillNames {
		keys[id] = name
	}
	return keys
}()

// SkillName returns the document name for id, the inverse of SkillByName.
//
// Postcondition: Returns the name and true, or "" and false when id has no
// document name.
func SkillName(id ID) (string, bool) {
	name, ok := skillKeys[id]
	return name, ok
}
