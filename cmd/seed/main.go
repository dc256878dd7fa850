package main

import (
	"log"
	"os"
	"time"

	"tourbook/internal/database"
	"tourbook/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tourbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Service{},
		&domain.Vehicle{},
		&domain.PriceTier{},
		&domain.AddOnPrice{},
		&domain.Hotel{},
		&domain.HotelCommissionOverride{},
		&domain.Reservation{},
		&domain.PaymentIntent{},
		&domain.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM payment_intents")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM hotel_commission_overrides")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM addon_prices")
	db.Exec("DELETE FROM price_tiers")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM services")

	// ================== SERVICES ==================
	log.Println("Creating services...")
	services := []domain.Service{
		{
			Code:        "airport_transfer",
			Name:        "Airport Transfer",
			Description: "Private transfer between the airport and your hotel",
			Config:      map[string]any{"addons": []string{"child_seat", "sign_board"}},
			Active:      true,
		},
		{
			Code:        "island_tour",
			Name:        "Island Tour",
			Description: "Full-day island hopping with driver and boat",
			Config:      map[string]any{"addons": []string{"lunch", "snorkel_set", "guide"}},
			Active:      true,
		},
	}
	for i := range services {
		db.Create(&services[i])
	}

	// ================== VEHICLES ==================
	log.Println("Creating vehicles...")
	vehicles := []domain.Vehicle{
		{Name: "Sedan", CapacityMin: 1, CapacityMax: 3, Active: true},
		{Name: "Van", CapacityMin: 4, CapacityMax: 8, Active: true},
		{Name: "Minibus", CapacityMin: 9, CapacityMax: 16, Active: true},
	}
	for i := range vehicles {
		db.Create(&vehicles[i])
	}
	sedan, van, minibus := vehicles[0], vehicles[1], vehicles[2]

	// ================== PRICE TIERS ==================
	// Two generations of transfer prices: the 2025 list plus the current one
	// that superseded it. Resolution always picks the newest tier that is
	// already effective, so the old rows stay for historical quotes.
	log.Println("Creating price tiers...")
	lastYear := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	thisYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tiers := []domain.PriceTier{
		{ServiceType: "airport_transfer", VehicleID: sedan.ID, PassengerMin: 1, PassengerMax: 3, Price: 120000, EffectiveFrom: lastYear, Active: true},
		{ServiceType: "airport_transfer", VehicleID: sedan.ID, PassengerMin: 1, PassengerMax: 3, Price: 135000, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "airport_transfer", VehicleID: van.ID, PassengerMin: 1, PassengerMax: 8, Price: 150000, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "airport_transfer", VehicleID: minibus.ID, PassengerMin: 1, PassengerMax: 16, Price: 220000, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "island_tour", VehicleID: van.ID, PassengerMin: 1, PassengerMax: 8, Price: 350000, EffectiveFrom: thisYear, Active: true},
	}
	for i := range tiers {
		db.Create(&tiers[i])
	}

	// ================== ADD-ON PRICES ==================
	log.Println("Creating add-on prices...")
	addOns := []domain.AddOnPrice{
		{ServiceType: "airport_transfer", AddOnType: "child_seat", QuantityMin: 1, QuantityMax: 3, Price: 5000, PerUnit: true, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "airport_transfer", AddOnType: "sign_board", QuantityMin: 1, QuantityMax: 1, Price: 2000, PerUnit: false, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "island_tour", AddOnType: "lunch", QuantityMin: 1, QuantityMax: 16, Price: 15000, PerUnit: true, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "island_tour", AddOnType: "snorkel_set", QuantityMin: 1, QuantityMax: 16, Price: 8000, PerUnit: true, EffectiveFrom: thisYear, Active: true},
		{ServiceType: "island_tour", AddOnType: "guide", QuantityMin: 1, QuantityMax: 1, Price: 60000, PerUnit: false, EffectiveFrom: thisYear, Active: true},
	}
	for i := range addOns {
		db.Create(&addOns[i])
	}

	// ================== HOTELS ==================
	log.Println("Creating hotels...")
	hotels := []domain.Hotel{
		{Name: "Lagoon Resort", CommissionPercent: 10, CancellationFee: 30000, Active: true},
		{Name: "Palm Beach Hotel", CommissionPercent: 15, CancellationFee: 0, Active: true},
		{Name: "Hilltop Villas", CommissionPercent: 0, CancellationFee: 50000, Active: true},
	}
	for i := range hotels {
		db.Create(&hotels[i])
	}

	// Lagoon negotiated a flat amount for minibus transfers, Palm Beach
	// waived commission on sedan transfers entirely (a real zero override).
	db.Create(&domain.HotelCommissionOverride{
		HotelID: hotels[0].ID, ServiceType: "airport_transfer", VehicleID: minibus.ID, Amount: 25000,
	})
	db.Create(&domain.HotelCommissionOverride{
		HotelID: hotels[1].ID, ServiceType: "airport_transfer", VehicleID: sedan.ID, Amount: 0,
	})

	// ================== SAMPLE RESERVATION ==================
	log.Println("Creating sample reservation...")
	scheduled := time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Hour)
	hotelID := hotels[0].ID
	db.Create(&domain.Reservation{
		Code:         "TB-1756400000000000000",
		ServiceType:  "airport_transfer",
		HotelID:      &hotelID,
		VehicleID:    van.ID,
		Passengers:   4,
		ScheduledAt:  scheduled,
		VehiclePrice: 150000,
		AddOnTotal:   0,
		TotalPrice:   150000,
		Commission:   15000,
		FinalPrice:   165000,
		Status:       domain.StatusScheduledQuoted,
		ContactName:  "Jane Walker",
		ContactEmail: "jane@example.com",
		ContactPhone: "+66 81 234 5678",
		Details:      map[string]any{"flight": "TG921", "pickup": "HKT arrivals"},
	})

	log.Println("Seed completed")
}
