package models

// Rarity is the closed classification of a printing.
type Rarity string

const (
	RarityMythic    Rarity = "mythic"
	RarityRare      Rarity = "rare"
	RarityUncommon  Rarity = "uncommon"
	RarityCommon    Rarity = "common"
	RaritySpecial   Rarity = "special"
	RarityBasicLand Rarity = "basic_land"
)

var rarityBySource = map[string]Rarity{
	"mythic":     RarityMythic,
	"rare":       RarityRare,
	"uncommon":   RarityUncommon,
	"common":     RarityCommon,
	"basic land": RarityBasicLand,
}

// ParseRarity maps the feed's rarity string exactly. Anything unrecognized, including
// an absent value, is RaritySpecial.
func ParseRarity(s *string) Rarity {
	if s == nil {
		return RaritySpecial
	}
	if r, ok := rarityBySource[*s]; ok {
		return r
	}
	return RaritySpecial
}

// Order is the display position, mythic first.
func (r Rarity) Order() int {
	switch r {
	case RarityMythic:
		return 1
	case RarityRare:
		return 2
	case RarityUncommon:
		return 3
	case RarityCommon:
		return 4
	case RaritySpecial:
		return 5
	case RarityBasicLand:
		return 6
	default:
		return 7
	}
}

// Label is the human-readable name.
func (r Rarity) Label() string {
	switch r {
	case RarityMythic:
		return "Mythic Rare"
	case RarityRare:
		return "Rare"
	case RarityUncommon:
		return "Uncommon"
	case RarityCommon:
		return "Common"
	case RarityBasicLand:
		return "Basic Land"
	default:
		return "Special"
	}
}
