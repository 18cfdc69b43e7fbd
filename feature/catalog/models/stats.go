package models

import "time"

// ImportStats reports what one import created.
type ImportStats struct {
	Scope          string        `json:"scope"`
	Sets           int64         `json:"sets"`
	Cards          int64         `json:"cards"`
	Printings      int64         `json:"printings"`
	OrphansRemoved int64         `json:"orphans_removed"`
	Flushed        bool          `json:"flushed"`
	Duration       time.Duration `json:"-"`
	DurationMS     int64         `json:"duration_ms"`
}

// Totals are row counts of the catalog tables.
type Totals struct {
	Sets            int64 `json:"sets"`
	SetTypes        int64 `json:"set_types"`
	Cards           int64 `json:"cards"`
	Printings       int64 `json:"printings"`
	Artists         int64 `json:"artists"`
	FrameEffects    int64 `json:"frame_effects"`
	PromoTypes      int64 `json:"promo_types"`
	OrphanPrintings int64 `json:"orphan_printings"`
}

// Since returns the rows created between before and t for the entities an import reports.
func (t Totals) Since(before Totals) ImportStats {
	return ImportStats{
		Sets:      t.Sets - before.Sets,
		Cards:     t.Cards - before.Cards,
		Printings: t.Printings - before.Printings,
	}
}
