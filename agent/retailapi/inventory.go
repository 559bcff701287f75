package retailapi

import "strings"

// Inventory is the stock lookup service.
type Inventory struct {
	stock  map[string]InventoryEntry
	stores map[string][]StoreInfo
}

// NewInventory seeds stock levels for the demo assortment.
func NewInventory() *Inventory {
	return &Inventory{
		stock:  seedStock(),
		stores: seedStores(),
	}
}

// Check returns availability for the given product ids. Unknown ids come back
// as out of stock so callers always get one entry per requested id.
func (inv *Inventory) Check(productIDs []string) []InventoryEntry {
	out := make([]InventoryEntry, 0, len(productIDs))
	for _, id := range productIDs {
		entry, ok := inv.stock[id]
		if !ok {
			entry = InventoryEntry{ProductID: id, InStock: false}
		}
		out = append(out, entry)
	}
	return out
}

// Reserve decrements online stock for a checkout. It fails when any item has
// insufficient stock, leaving all levels untouched.
func (inv *Inventory) Reserve(productIDs []string) bool {
	for _, id := range productIDs {
		entry, ok := inv.stock[id]
		if !ok || entry.OnlineStock < 1 {
			return false
		}
	}
	for _, id := range productIDs {
		entry := inv.stock[id]
		entry.OnlineStock--
		entry.InStock = entry.OnlineStock > 0 || anyStoreStock(entry.StoreStock)
		inv.stock[id] = entry
	}
	return true
}

// NearbyStores lists stores in the shopper's city, falling back to the
// flagship set when the city is unknown.
func (inv *Inventory) NearbyStores(location string) []StoreInfo {
	if stores, ok := inv.stores[strings.ToLower(strings.TrimSpace(location))]; ok {
		return stores
	}
	return inv.stores["bengaluru"]
}

func anyStoreStock(stock map[string]int) bool {
	for _, n := range stock {
		if n > 0 {
			return true
		}
	}
	return false
}

func seedStock() map[string]InventoryEntry {
	return map[string]InventoryEntry{
		"P001": {ProductID: "P001", InStock: true, OnlineStock: 24, StoreStock: map[string]int{"ST01": 6, "ST02": 3}, Sizes: []string{"7", "8", "9", "10"}},
		"P002": {ProductID: "P002", InStock: true, OnlineStock: 11, StoreStock: map[string]int{"ST01": 2}, Sizes: []string{"9", "10", "11"}},
		"P003": {ProductID: "P003", InStock: true, OnlineStock: 40, StoreStock: map[string]int{"ST01": 10, "ST03": 8}, Sizes: []string{"6", "7", "8", "9", "10"}},
		"P004": {ProductID: "P004", InStock: true, OnlineStock: 15, Sizes: []string{"M", "L", "XL"}},
		"P005": {ProductID: "P005", InStock: true, OnlineStock: 4, StoreStock: map[string]int{"ST02": 1}, Sizes: []string{"L", "XL"}},
		"P006": {ProductID: "P006", InStock: true, OnlineStock: 120, StoreStock: map[string]int{"ST01": 30, "ST02": 25, "ST03": 18}, Sizes: []string{"S", "M", "L", "XL", "XXL"}},
		"P007": {ProductID: "P007", InStock: true, OnlineStock: 55, StoreStock: map[string]int{"ST01": 12}, Sizes: []string{"S", "M", "L"}},
		"P008": {ProductID: "P008", InStock: true, OnlineStock: 33, Sizes: []string{"30", "32", "34"}},
		"P009": {ProductID: "P009", InStock: true, OnlineStock: 9, StoreStock: map[string]int{"ST02": 2}},
		"P010": {ProductID: "P010", InStock: true, OnlineStock: 21, StoreStock: map[string]int{"ST03": 5}},
		"P011": {ProductID: "P011", InStock: false, OnlineStock: 0, StoreStock: map[string]int{"ST01": 1}, Sizes: []string{"9"}},
		"P012": {ProductID: "P012", InStock: true, OnlineStock: 17, Sizes: []string{"M", "L"}},
	}
}

func seedStores() map[string][]StoreInfo {
	return map[string][]StoreInfo{
		"bengaluru": {
			{StoreID: "ST01", Name: "Velocity Sports Indiranagar", City: "Bengaluru", Address: "100 Feet Road, Indiranagar", Distance: "2.1 km"},
			{StoreID: "ST02", Name: "Velocity Sports Koramangala", City: "Bengaluru", Address: "80 Feet Road, Koramangala", Distance: "5.4 km"},
		},
		"mumbai": {
			{StoreID: "ST03", Name: "Velocity Sports Bandra", City: "Mumbai", Address: "Linking Road, Bandra West", Distance: "1.8 km"},
		},
		"delhi": {
			{StoreID: "ST04", Name: "Velocity Sports Saket", City: "Delhi", Address: "Select Citywalk, Saket", Distance: "3.0 km"},
		},
	}
}
