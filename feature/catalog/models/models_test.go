package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseRarity(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want Rarity
	}{
		{"Mythic", strPtr("mythic"), RarityMythic},
		{"Rare", strPtr("rare"), RarityRare},
		{"Uncommon", strPtr("uncommon"), RarityUncommon},
		{"Common", strPtr("common"), RarityCommon},
		{"Basic Land", strPtr("basic land"), RarityBasicLand},
		{"Bonus", strPtr("bonus"), RaritySpecial},
		{"Special", strPtr("special"), RaritySpecial},
		{"Case Sensitive", strPtr("Rare"), RaritySpecial},
		{"Underscored", strPtr("basic_land"), RaritySpecial},
		{"Empty", strPtr(""), RaritySpecial},
		{"Absent", nil, RaritySpecial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRarity(tt.in))
		})
	}
}

func TestRarityOrder(t *testing.T) {
	ordered := []Rarity{RarityMythic, RarityRare, RarityUncommon, RarityCommon, RaritySpecial, RarityBasicLand}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Order(), ordered[i].Order())
	}
	assert.Equal(t, "Mythic Rare", RarityMythic.Label())
	assert.Equal(t, "Special", Rarity("unknown").Label())
}

func TestPrintingImageURL(t *testing.T) {
	mid := 409574

	t.Run("Stored URL Wins", func(t *testing.T) {
		p := Printing{ExternalImageURL: strPtr("https://img/normal.jpg"), MultiverseID: &mid}
		assert.Equal(t, "https://img/normal.jpg", p.ImageURL())
	})

	t.Run("Gatherer Fallback", func(t *testing.T) {
		p := Printing{MultiverseID: &mid}
		assert.Equal(t, "http://gatherer.wizards.com/Handlers/Image.ashx?multiverseid=409574&type=card", p.ImageURL())
	})

	t.Run("Unknown", func(t *testing.T) {
		p := Printing{ExternalImageURL: strPtr("")}
		assert.Empty(t, p.ImageURL())
	})
}

func TestSetHasExternalID(t *testing.T) {
	assert.False(t, (&Set{}).HasExternalID())
	assert.False(t, (&Set{ExternalID: strPtr("")}).HasExternalID())
	assert.True(t, (&Set{ExternalID: strPtr("s-1")}).HasExternalID())
}

func TestTotalsSince(t *testing.T) {
	before := Totals{Sets: 2, Cards: 10, Printings: 12, Artists: 4}
	after := Totals{Sets: 3, Cards: 10, Printings: 15, Artists: 9}

	got := after.Since(before)
	assert.Equal(t, int64(1), got.Sets)
	assert.Equal(t, int64(0), got.Cards)
	assert.Equal(t, int64(3), got.Printings)
}
