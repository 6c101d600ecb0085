package model

// Wire/blob item structures. The XML tags are the game protocol's attribute
// names; the single-letter JSON tags are the compact storage form the
// account blobs use.

// EquippedItem is one slot of a player's loadout.
type EquippedItem struct {
	Slot   int32  `json:"s" xml:"slot,attr"`
	Index  int32  `json:"i" xml:"index,attr"`
	Amount int32  `json:"a" xml:"amount,attr"`
	Key    string `json:"k" xml:"key,attr"`
}

// StoredItem is one item in a player's backpack or stash.
type StoredItem struct {
	Class int32  `json:"c" xml:"class,attr"`
	Index int32  `json:"i" xml:"index,attr"`
	Key   string `json:"k" xml:"key,attr"`
}

// KillCombo is one bucket of the kill-combo histogram.
type KillCombo struct {
	Kills int32 `json:"k" xml:"kills,attr"`
	Times int32 `json:"t" xml:"times,attr"`
}

// Monitor is one criteria-monitor entry.
type Monitor struct {
	Name  string `json:"n" xml:"name,attr"`
	Count int32  `json:"c" xml:"count,attr"`
}
