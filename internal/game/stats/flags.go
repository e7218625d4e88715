package stats

// Can-flag bits of stat 30. An item's capabilities are the OR of these.
const (
	CanCarry       = 1 << 0
	CanSit         = 1 << 1
	CanWear        = 1 << 2
	CanUse         = 1 << 3
	CanConfirmUse  = 1 << 4
	CanConsume     = 1 << 5
	CanBurst       = 1 << 11
	CanFlingShot   = 1 << 12
	CanFullAuto    = 1 << 13
	CanAimedShot   = 1 << 14
	CanBowSpecial  = 1 << 15
	CanThrowAttack = 1 << 16
	CanSneakAttack = 1 << 17
	CanFastAttack  = 1 << 18
	CanBrawl       = 1 << 25
	CanDimach      = 1 << 26
)

// Special identifies one weapon special attack.
type Special int

// Special attacks in can-flag bit order.
const (
	SpecialBurst Special = iota
	SpecialFlingShot
	SpecialFullAuto
	SpecialAimedShot
	SpecialSneakAttack
	SpecialFastAttack
	SpecialBrawl
	SpecialDimach
)

// Specials lists every special attack in can-flag bit order.
//
// Postcondition: Returns a fresh slice; callers may reorder it freely.
func Specials() []Special {
	return []Special{
		SpecialBurst, SpecialFlingShot, SpecialFullAuto, SpecialAimedShot,
		SpecialSneakAttack, SpecialFastAttack, SpecialBrawl, SpecialDimach,
	}
}

// String returns the display name of the special attack.
func (s Special) String() string {
	switch s {
	case SpecialBurst:
		return "Burst"
	case SpecialFlingShot:
		return "Fling Shot"
	case SpecialFullAuto:
		return "Full Auto"
	case SpecialAimedShot:
		return "Aimed Shot"
	case SpecialSneakAttack:
		return "Sneak Attack"
	case SpecialFastAttack:
		return "Fast Attack"
	case SpecialBrawl:
		return "Brawl"
	case SpecialDimach:
		return "Dimach"
	default:
		return "unknown"
	}
}

// Flag returns the can-flag bit that marks a weapon as supporting s.
func (s Special) Flag() int {
	switch s {
	case SpecialBurst:
		return CanBurst
	case SpecialFlingShot:
		return CanFlingShot
	case SpecialFullAuto:
		return CanFullAuto
	case SpecialAimedShot:
		return CanAimedShot
	case SpecialSneakAttack:
		return CanSneakAttack
	case SpecialFastAttack:
		return CanFastAttack
	case SpecialBrawl:
		return CanBrawl
	case SpecialDimach:
		return CanDimach
	default:
		return 0
	}
}

// Skill returns the stat identifier of the character skill that feeds s.
func (s Special) Skill() ID {
	switch s {
	case SpecialBurst:
		return BurstSkill
	case SpecialFlingShot:
		return FlingShotSkill
	case SpecialFullAuto:
		return FullAutoSkill
	case SpecialAimedShot:
		return AimedShotSkill
	case SpecialSneakAttack:
		return SneakAttackSkill
	case SpecialFastAttack:
		return FastAttackSkill
	case SpecialBrawl:
		return BrawlSkill
	case SpecialDimach:
		return DimachSkill
	default:
		return 0
	}
}
