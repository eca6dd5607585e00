package model

import (
	"time"
)

type RoomType string

const (
	RoomLivingRoom    RoomType = "Living Room"
	RoomMasterBedroom RoomType = "Master Bedroom"
	RoomKidsBedroom   RoomType = "Kids Bedroom"
	RoomKitchen       RoomType = "Kitchen"
	RoomDining        RoomType = "Dining"
	RoomBalcony       RoomType = "Balcony"
)

type Style string

const (
	StyleModern      Style = "Modern"
	StyleMinimal     Style = "Minimal"
	StyleLuxury      Style = "Luxury"
	StyleBoho        Style = "Boho"
	StyleTraditional Style = "Traditional"
)

// RoomTypes and Styles are the closed sets the filter UI selects from.
// The string value is both the canonical key and the display label.
var (
	RoomTypes = []RoomType{RoomLivingRoom, RoomMasterBedroom, RoomKidsBedroom, RoomKitchen, RoomDining, RoomBalcony}
	Styles    = []Style{StyleModern, StyleMinimal, StyleLuxury, StyleBoho, StyleTraditional}
)

func (r RoomType) Valid() bool {
	for _, v := range RoomTypes {
		if v == r {
			return true
		}
	}
	return false
}

func (s Style) Valid() bool {
	for _, v := range Styles {
		if v == s {
			return true
		}
	}
	return false
}

type BadgeTone string

const (
	BadgeTonePrimary BadgeTone = "primary"
	BadgeToneMuted   BadgeTone = "muted"
	BadgeToneDefault BadgeTone = "default"
)

// Badge is an optional marketing label on a design card.
type Badge struct {
	Label string    `json:"label"`
	Tone  BadgeTone `json:"tone"`
}

// BadgeClass maps a tone to the CSS class the SPA renders. Unknown tones
// fall back to the default treatment.
func BadgeClass(t BadgeTone) string {
	switch t {
	case BadgeTonePrimary:
		return "badge-primary"
	case BadgeToneMuted:
		return "badge-muted"
	default:
		return "badge-default"
	}
}

// DesignRecord is one catalog entry. Records are read-only to the filter
// engine; price is INR with no fractional part.
type DesignRecord struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image"`
	RoomType   RoomType  `json:"roomType"`
	Style      Style     `json:"style"`
	Price      int64     `json:"price"`
	Popularity int       `json:"popularity"`
	CreatedAt  time.Time `json:"createdAt"`
	IsVerified bool      `json:"isVerified"`
	Badge      *Badge    `json:"badge,omitempty"`
	Published  bool      `json:"-"`
}
