// Package profile defines character profile documents and their
// conversion into calculator input.
package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Breed is a playable breed, stored by its lowercase name.
type Breed string

const (
	BreedSolitus  Breed = "solitus"
	BreedOpifex   Breed = "opifex"
	BreedNanomage Breed = "nanomage"
	BreedAtrox    Breed = "atrox"
)

// Num returns the game's numeric breed identifier, 0 for unknown breeds.
func (b Breed) Num() int {
	switch b {
	case BreedSolitus:
		return 1
	case BreedOpifex:
		return 2
	case BreedNanomage:
		return 3
	case BreedAtrox:
		return 4
	default:
		return 0
	}
}

// Profession is a playable profession, stored by its lowercase name.
type Profession string

const (
	ProfessionSoldier        Profession = "soldier"
	ProfessionMartialArtist  Profession = "martial-artist"
	ProfessionEngineer       Profession = "engineer"
	ProfessionFixer          Profession = "fixer"
	ProfessionAgent          Profession = "agent"
	ProfessionAdventurer     Profession = "adventurer"
	ProfessionTrader         Profession = "trader"
	ProfessionBureaucrat     Profession = "bureaucrat"
	ProfessionEnforcer       Profession = "enforcer"
	ProfessionDoctor         Profession = "doctor"
	ProfessionNanoTechnician Profession = "nano-technician"
	ProfessionMetaPhysicist  Profession = "meta-physicist"
	ProfessionKeeper         Profession = "keeper"
	ProfessionShade          Profession = "shade"
)

// Num returns the game's numeric profession identifier, 0 for unknown
// professions.
func (p Profession) Num() int {
	switch p {
	case ProfessionSoldier:
		return 1
	case ProfessionMartialArtist:
		return 2
	case ProfessionEngineer:
		return 3
	case ProfessionFixer:
		return 4
	case ProfessionAgent:
		return 5
	case ProfessionAdventurer:
		return 6
	case ProfessionTrader:
		return 7
	case ProfessionBureaucrat:
		return 8
	case ProfessionEnforcer:
		return 9
	case ProfessionDoctor:
		return 10
	case ProfessionNanoTechnician:
		return 11
	case ProfessionMetaPhysicist:
		return 12
	case ProfessionKeeper:
		return 14
	case ProfessionShade:
		return 15
	default:
		return 0
	}
}

// Side is a faction, stored by its lowercase name.
type Side string

const (
	SideNeutral Side = "neutral"
	SideClan    Side = "clan"
	SideOmni    Side = "omni"
)

// Num returns the game's numeric faction identifier. Neutral and unknown
// sides both map to 0, matching the game's encoding.
func (s Side) Num() int {
	switch s {
	case SideClan:
		return 1
	case SideOmni:
		return 2
	default:
		return 0
	}
}

// Initiatives holds the profile's initiative skill totals.
type Initiatives struct {
	Melee    int `yaml:"melee" json:"melee"`
	Physical int `yaml:"physical" json:"physical"`
	Ranged   int `yaml:"ranged" json:"ranged"`
}

// Profile is a character sheet. Skill maps are keyed by the lowercase
// hyphenated skill names from the stat catalog.
//
// ID and the timestamps are set by the persistence layer; zero values
// indicate an unsaved profile.
type Profile struct {
	ID uuid.UUID `yaml:"-"`

	Name       string     `yaml:"name"`
	Breed      Breed      `yaml:"breed"`
	Profession Profession `yaml:"profession"`
	Level      int        `yaml:"level"`
	Side       Side       `yaml:"side"`

	// Crit is the critical hit chance in percent. AggDef is the agg/def
	// slider position; 0 selects the neutral default.
	Crit   float64 `yaml:"crit"`
	AggDef float64 `yaml:"aggdef,omitempty"`

	Abilities       map[string]int `yaml:"abilities,omitempty"`
	WeaponSkills    map[string]int `yaml:"weapon_skills,omitempty"`
	SpecialSkills   map[string]int `yaml:"special_skills,omitempty"`
	Initiatives     Initiatives    `yaml:"initiatives,omitempty"`
	DamageModifiers map[string]int `yaml:"damage_modifiers,omitempty"`

	// AAO is the add-all-offense total. Wrangle is the external attack
	// rating buff carried for display purposes.
	AAO     int `yaml:"aao,omitempty"`
	Wrangle int `yaml:"wrangle,omitempty"`

	CreatedAt time.Time `yaml:"-"`
	UpdatedAt time.Time `yaml:"-"`
}

var validBreeds = map[Breed]bool{
	BreedSolitus: true, BreedOpifex: true, BreedNanomage: true, BreedAtrox: true,
}

var validProfessions = map[Profession]bool{
	ProfessionSoldier: true, ProfessionMartialArtist: true, ProfessionEngineer: true,
	ProfessionFixer: true, ProfessionAgent: true, ProfessionAdventurer: true,
	ProfessionTrader: true, ProfessionBureaucrat: true, ProfessionEnforcer: true,
	ProfessionDoctor: true, ProfessionNanoTechnician: true, ProfessionMetaPhysicist: true,
	ProfessionKeeper: true, ProfessionShade: true,
}

var validSides = map[Side]bool{
	SideNeutral: true, SideClan: true, SideOmni: true,
}

// Validate checks that the Profile satisfies its invariants.
// Precondition: p is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (p *Profile) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validBreeds[p.Breed] {
		errs = append(errs, fmt.Errorf("unknown breed %q", p.Breed))
	}
	if !validProfessions[p.Profession] {
		errs = append(errs, fmt.Errorf("unknown profession %q", p.Profession))
	}
	if !validSides[p.Side] {
		errs = append(errs, fmt.Errorf("unknown side %q", p.Side))
	}
	if p.Level < 1 || p.Level > 220 {
		errs = append(errs, fmt.Errorf("level %d outside 1..220", p.Level))
	}
	if p.Crit < 0 || p.Crit > 100 {
		errs = append(errs, fmt.Errorf("crit %v outside 0..100", p.Crit))
	}
	if p.AggDef < 0 || p.AggDef > 100 {
		errs = append(errs, fmt.Errorf("aggdef %v outside 0..100", p.AggDef))
	}
	for _, m := range []map[string]int{p.Abilities, p.WeaponSkills, p.SpecialSkills, p.DamageModifiers} {
		for name := range m {
			if _, ok := stats.SkillByName(name); !ok {
				errs = append(errs, fmt.Errorf("unknown skill %q", name))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("profile validation failed: %v", errs)
	}
	return nil
}
