package analysis

import "stocklens/internal"

// SampleItems returns the built-in demo inventory. Callers substitute it
// when an input file yields no usable records, so an upload problem degrades
// to a notice instead of an empty screen.
func SampleItems() []internal.CanonicalItem {
	return []internal.CanonicalItem{
		{Material: "AC0303020106", Description: "FLAT ALUMINIUM PROFILE", Quantity: 5.23, NormQuantity: 4, StockValue: 496, Vendor: "Vendor_A"},
		{Material: "AC0303020105", Description: "RAIN GUTTER PROFILE", Quantity: 8.36, NormQuantity: 6, StockValue: 1984, Vendor: "Vendor_B"},
		{Material: "AA0106010001", Description: "HYDRAULIC POWER STEERING OIL", Quantity: 12.5, NormQuantity: 10, StockValue: 2356, Vendor: "Vendor_A"},
		{Material: "AC0203020077", Description: "Bulb beading LV battery flap", Quantity: 3.5, NormQuantity: 3, StockValue: 248, Vendor: "Vendor_C"},
		{Material: "AC0303020104", Description: "L- PROFILE JAM PILLAR", Quantity: 15.94, NormQuantity: 20, StockValue: 992, Vendor: "Vendor_A"},
		{Material: "AA0112014000", Description: "Conduit Pipe Filter to Compressor", Quantity: 25, NormQuantity: 30, StockValue: 1248, Vendor: "Vendor_B"},
		{Material: "AA0115120001", Description: "HVPDU ms", Quantity: 18, NormQuantity: 12, StockValue: 1888, Vendor: "Vendor_D"},
		{Material: "AA0119020017", Description: "REAR TURN INDICATOR", Quantity: 35, NormQuantity: 40, StockValue: 1512, Vendor: "Vendor_C"},
		{Material: "AA0119020019", Description: "REVERSING LAMP", Quantity: 28, NormQuantity: 20, StockValue: 1152, Vendor: "Vendor_A"},
		{Material: "AA0822010800", Description: "SIDE DISPLAY BOARD", Quantity: 42, NormQuantity: 50, StockValue: 2496, Vendor: "Vendor_B"},
		{Material: "BB0101010001", Description: "ENGINE OIL FILTER", Quantity: 65, NormQuantity: 45, StockValue: 1300, Vendor: "Vendor_E"},
		{Material: "BB0202020002", Description: "BRAKE PAD SET", Quantity: 22, NormQuantity: 25, StockValue: 880, Vendor: "Vendor_C"},
		{Material: "CC0303030003", Description: "CLUTCH DISC", Quantity: 8, NormQuantity: 12, StockValue: 640, Vendor: "Vendor_D"},
		{Material: "DD0404040004", Description: "SPARK PLUG", Quantity: 45, NormQuantity: 35, StockValue: 450, Vendor: "Vendor_A"},
		{Material: "EE0505050005", Description: "AIR FILTER", Quantity: 30, NormQuantity: 28, StockValue: 600, Vendor: "Vendor_B"},
		{Material: "FF0606060006", Description: "FUEL FILTER", Quantity: 55, NormQuantity: 50, StockValue: 1100, Vendor: "Vendor_E"},
		{Material: "GG0707070007", Description: "TRANSMISSION OIL", Quantity: 40, NormQuantity: 35, StockValue: 800, Vendor: "Vendor_C"},
		{Material: "HH0808080008", Description: "COOLANT", Quantity: 22, NormQuantity: 30, StockValue: 660, Vendor: "Vendor_D"},
		{Material: "II0909090009", Description: "BRAKE FLUID", Quantity: 15, NormQuantity: 12, StockValue: 300, Vendor: "Vendor_A"},
		{Material: "JJ1010101010", Description: "WINDSHIELD WASHER", Quantity: 33, NormQuantity: 25, StockValue: 495, Vendor: "Vendor_B"},
	}
}
