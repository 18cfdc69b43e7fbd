// Package models defines the gorm entities of the card catalog: sets and set types,
// cards, printings, artists, and the frame-effect and promo-type tags.
package models
