package model

// Station is one entry of the portal's station directory. The ID is the
// canonical identity; the name is whatever free text the portal prints and may
// differ in diacritics or spacing between page sources.
type Station struct {
	ID   string `groups:"basic"`
	Name string `groups:"basic"`
}

// RollingStockInfo describes one locomotive/wagon/train-type catalog entry.
type RollingStockInfo struct {
	Name  string `groups:"basic"`
	Image string `groups:"basic"`
}
