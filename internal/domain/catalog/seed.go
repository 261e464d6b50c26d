package catalog

import "github.com/shopspring/decimal"

// Demo records loaded into an empty store when seeding is enabled.

func SeedCustomers() []Customer {
	return []Customer{
		{Name: "ABC Company", Address: "123 Business Park", Mobile: "9876543210", GST: "29ABCDE1234F1Z5"},
		{Name: "XYZ Enterprises", Address: "456 Tech Hub", Mobile: "8765432109", GST: "27FGHIJ5678K2Y6"},
		{Name: "PQR Solutions", Address: "789 Corporate Tower", Mobile: "7654321098", GST: "24KLMNO9012P3X7"},
	}
}

func SeedSalespeople() []Salesperson {
	return []Salesperson{
		{Name: "John Doe", Mobile: "9876543210", Place: "North Region", Email: "john.doe@example.com"},
		{Name: "Jane Smith", Mobile: "8765432109", Place: "South Region", Email: "jane.smith@example.com"},
		{Name: "Robert Johnson", Mobile: "7654321098", Place: "East Region", Email: "robert.j@example.com"},
	}
}

func SeedProducts() []Product {
	return []Product{
		{
			Name:           "eGlu HUB-Pro (EGHB03M)",
			Brand:          "eGlu",
			Specifications: "eGlu gateway manages up to 240 devices with a built-in rule engine, 24-hour backup, and advanced lighting features.",
			MRP:            decimal.NewFromInt(31160),
		},
		{
			Name:           "eGlu In-Wall Switch 16A (EGIW03R)",
			Brand:          "eGlu",
			Specifications: "Automates one high-power load (e.g., geyser, A/C, motor) while working seamlessly with regular wall switches.",
			MRP:            decimal.NewFromInt(6800),
		},
		{
			Name:           "eGlu In-Wall Triple Switch (EGIW04R)",
			Brand:          "eGlu",
			Specifications: "Automates up to 3 loads (e.g., lights, fans) and integrates seamlessly with regular wall switches.",
			MRP:            decimal.NewFromInt(10120),
		},
		{
			Name:           "eGlu Gate Controller DC (EGGC02R)",
			Brand:          "eGlu",
			Specifications: "Automates motorized gates and includes open-close detection.",
			MRP:            decimal.NewFromInt(10120),
		},
		{
			Name:           "eGlu Pleated Curtain System - 4M (EGCS01R-4M)",
			Brand:          "eGlu",
			Specifications: "Fully automated pleated curtain system with up to 4M track length, accessories, and devices.",
			MRP:            decimal.NewFromInt(28000),
		},
	}
}
