package models

// PickupSlot is one discrete pickup time offered to a customer. Slots are
// computed on every query and never persisted.
type PickupSlot struct {
	Date  string `json:"date"`  // "2006-01-02"
	Time  string `json:"time"`  // "15:04"
	Label string `json:"label"` // e.g. "Mon, Jan 2 at 3:04 PM"
}
