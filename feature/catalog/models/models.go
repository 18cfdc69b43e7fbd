package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// SetType is a release category such as "expansion" or "masters".
type SetType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:63;uniqueIndex;not null"`
}

// Set is a named release grouping, identified by its short code.
type Set struct {
	ID          uint    `gorm:"primaryKey"`
	ExternalID  *string `gorm:"size:63"`
	Name        string  `gorm:"size:255;not null"`
	Code        string  `gorm:"size:8;uniqueIndex;not null"`
	SetTypeID   *uint
	SetType     *SetType
	ReleaseDate *datatypes.Date
	Digital     bool
	FoilOnly    bool
	NonfoilOnly bool
	IconURI     string `gorm:"size:255"`
}

// HasExternalID reports whether the set's external identifier has been populated.
func (s *Set) HasExternalID() bool {
	return s.ExternalID != nil && *s.ExternalID != ""
}

// FrameEffect is a frame treatment tag, e.g. "showcase".
type FrameEffect struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:63;uniqueIndex;not null"`
}

// PromoType is a promotional tag, e.g. "prerelease".
type PromoType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:63;uniqueIndex;not null"`
}

// Artist is credited on printings.
type Artist struct {
	ID       uint   `gorm:"primaryKey"`
	FullName string `gorm:"size:255;uniqueIndex;not null"`
}

// Card is the rules identity of a game object, unique by name. Cards survive
// reconciliation even when all of their printings are removed.
type Card struct {
	ID         uint    `gorm:"primaryKey"`
	ExternalID string  `gorm:"size:63"`
	Name       string  `gorm:"size:255;uniqueIndex;not null"`
	ManaCost   string  `gorm:"size:63"`
	Text       string  `gorm:"type:text"`
	Power      string  `gorm:"size:7"`
	Toughness  string  `gorm:"size:7"`
	Loyalty    *string `gorm:"size:8"`
	TypeLine   string  `gorm:"size:255"`
	Layout     string  `gorm:"size:63"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Printing is a Card appearing in a Set. (ExternalID, CardID) is unique; a null
// ExternalID marks a legacy row that the next import removes.
type Printing struct {
	ID               uint    `gorm:"primaryKey"`
	ExternalID       *string `gorm:"size:63;uniqueIndex:idx_printing_external_card,priority:1"`
	CardID           uint    `gorm:"not null;uniqueIndex:idx_printing_external_card,priority:2"`
	Card             *Card
	SetID            uint `gorm:"not null;index"`
	Set              *Set
	Rarity           Rarity `gorm:"size:16;not null"`
	FlavorText       string `gorm:"type:text"`
	ArtistID         *uint
	Artist           *Artist
	Number           string `gorm:"size:64"`
	MultiverseID     *int
	ExternalImageURL *string        `gorm:"size:1024"`
	FrameEffects     []*FrameEffect `gorm:"many2many:printing_frame_effects;"`
	PromoTypes       []*PromoType   `gorm:"many2many:printing_promo_types;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const gathererImageURL = "http://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=%d&type=card"

// ImageURL returns the stored image URL, falling back to the Gatherer image for the
// multiverse id. It is empty when neither is known.
func (p *Printing) ImageURL() string {
	if p.ExternalImageURL != nil && *p.ExternalImageURL != "" {
		return *p.ExternalImageURL
	}
	if p.MultiverseID != nil {
		return fmt.Sprintf(gathererImageURL, *p.MultiverseID)
	}
	return ""
}

// JoinTables maps the many-to-many tables between printings and tags to their columns.
var JoinTables = map[string][]string{
	"printing_frame_effects": {"printing_id", "frame_effect_id"},
	"printing_promo_types":   {"printing_id", "promo_type_id"},
}

// All lists every catalog model in dependency order, for migrations.
func All() []any {
	return []any{
		&SetType{},
		&Set{},
		&FrameEffect{},
		&PromoType{},
		&Artist{},
		&Card{},
		&Printing{},
	}
}
