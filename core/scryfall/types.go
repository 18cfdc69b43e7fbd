package scryfall

// SetRecord is one entry of the sets endpoint.
type SetRecord struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	SetType     *string `json:"set_type"`
	ReleasedAt  string  `json:"released_at"`
	Digital     bool    `json:"digital"`
	FoilOnly    bool    `json:"foil_only"`
	NonfoilOnly bool    `json:"nonfoil_only"`
	IconSVGURI  string  `json:"icon_svg_uri"`
}

// BulkDataEntry is one entry of the bulk-data index.
type BulkDataEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DownloadURI string `json:"download_uri"`
	UpdatedAt   string `json:"updated_at"`
	Size        int64  `json:"size"`
}

// CardFace holds the fields that may appear on a face or on the whole card.
// Nil pointers mean the key was absent or null.
type CardFace struct {
	Name       *string           `json:"name"`
	ManaCost   *string           `json:"mana_cost"`
	TypeLine   *string           `json:"type_line"`
	OracleText *string           `json:"oracle_text"`
	Power      *string           `json:"power"`
	Toughness  *string           `json:"toughness"`
	Loyalty    *string           `json:"loyalty"`
	FlavorText *string           `json:"flavor_text"`
	Artist     *string           `json:"artist"`
	ImageURIs  map[string]string `json:"image_uris"`
}

// CardRecord is one printing in the bulk card feed.
// FrameEffects and PromoTypes are nil when the key is absent and empty when the feed
// sent an empty list.
type CardRecord struct {
	CardFace

	ID              *string    `json:"id"`
	OracleID        *string    `json:"oracle_id"`
	Layout          string     `json:"layout"`
	Set             *string    `json:"set"`
	SetName         *string    `json:"set_name"`
	SetID           *string    `json:"set_id"`
	SetType         *string    `json:"set_type"`
	Rarity          *string    `json:"rarity"`
	CollectorNumber *string    `json:"collector_number"`
	MultiverseIDs   []int      `json:"multiverse_ids"`
	FrameEffects    []string   `json:"frame_effects"`
	PromoTypes      []string   `json:"promo_types"`
	CardFaces       []CardFace `json:"card_faces"`
}

// Faces returns the record's faces, or a single empty face for single-faced cards
// so that every field resolves from the record.
func (r *CardRecord) Faces() []CardFace {
	if len(r.CardFaces) == 0 {
		return []CardFace{{}}
	}
	return r.CardFaces
}

type listResponse[T any] struct {
	Object   string `json:"object"`
	HasMore  bool   `json:"has_more"`
	NextPage string `json:"next_page"`
	Data     []T    `json:"data"`
}
