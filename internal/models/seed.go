package models

// MarinaPosition is the reference position of the marina entrance.
var MarinaPosition = Coordinates{Lat: 40.9628, Lng: 28.6636}

// SeedFleet returns the default fleet in registry insertion order.
func SeedFleet() []VesselRecord {
	return []VesselRecord{
		{
			IMO: "987654321", Name: "S/Y Phisedelia", Type: "Sailing Yacht", Flag: "MT",
			LOA: 18.4, Beam: 5.2, Draft: 2.8, DWT: 150,
			Status: VesselInbound, Location: "Marmara Approach",
			Coordinates:          Coordinates{Lat: 40.85, Lng: 28.62},
			Voyage:               Voyage{LastPort: "Piraeus", NextPort: "WIM", ETA: "2025-11-20 14:00"},
			PaymentHistoryStatus: PaymentRegular, LoyaltyScore: 60, LoyaltyTier: TierGold,
			OwnerName: "Ahmet Kaya",
		},
		{
			IMO: "123456789", Name: "M/Y Blue Horizon", Type: "Motor Yacht", Flag: "KY",
			LOA: 24.0, Beam: 6.1, Draft: 2.2, DWT: 210,
			Status: VesselDocked, Location: "Pontoon A-05",
			Coordinates:          Coordinates{Lat: 40.9640, Lng: 28.6295},
			Voyage:               Voyage{LastPort: "Bodrum", NextPort: "WIM"},
			PaymentHistoryStatus: PaymentRecentlyLate, LoyaltyScore: 30, LoyaltyTier: TierStandard,
			OwnerName: "Selin Arda",
		},
		{
			IMO: "555666777", Name: "S/Y Mistral", Type: "Sailing Yacht", Flag: "TR",
			LOA: 14.2, Beam: 4.1, Draft: 2.1, DWT: 40,
			Status: VesselAnchored, Location: "Sector Zulu",
			Coordinates:          Coordinates{Lat: 40.95, Lng: 28.63},
			Voyage:               Voyage{LastPort: "Kas", NextPort: "WIM"},
			PaymentHistoryStatus: PaymentChronicallyLate, LoyaltyScore: 10, LoyaltyTier: TierStandard,
		},
		{
			IMO: "888999000", Name: "M/Y Poseidon", Type: "Superyacht", Flag: "BS",
			LOA: 32.5, Beam: 7.8, Draft: 3.0, DWT: 420,
			Status: VesselDocked, Location: "VIP Quay",
			Coordinates:          Coordinates{Lat: 40.9650, Lng: 28.6270},
			Voyage:               Voyage{LastPort: "Antalya", NextPort: "Dubrovnik", ETA: "2025-12-02 08:00"},
			PaymentHistoryStatus: PaymentRegular, LoyaltyScore: 95, LoyaltyTier: TierVIP,
			OwnerName: "Poseidon Holdings",
		},
		{
			IMO: "111222333", Name: "M/Y Solaris", Type: "Superyacht", Flag: "MH",
			LOA: 45.0, Beam: 8.9, Draft: 3.8, DWT: 610,
			Status: VesselInbound, Location: "Sea of Marmara",
			Coordinates:          Coordinates{Lat: 40.80, Lng: 28.70},
			Voyage:               Voyage{LastPort: "Monaco", NextPort: "WIM", ETA: "2025-11-21 10:00"},
			PaymentHistoryStatus: PaymentRegular, LoyaltyScore: 55, LoyaltyTier: TierGold,
		},
		{
			IMO: "444555666", Name: "S/Y Karayel", Type: "Sailing Yacht", Flag: "TR",
			LOA: 12.8, Beam: 4.0, Draft: 1.9, DWT: 25,
			Status: VesselDocked, Location: "Pontoon C-14",
			Coordinates:          Coordinates{Lat: 40.9622, Lng: 28.6310},
			PaymentHistoryStatus: PaymentRegular, LoyaltyScore: 20, LoyaltyTier: TierStandard,
		},
		{
			IMO: "777888999", Name: "M/Y Lady Sarah", Type: "Motor Yacht", Flag: "GB",
			LOA: 21.5, Beam: 5.6, Draft: 1.8, DWT: 160,
			Status: VesselDocked, Location: "Pontoon A-11",
			Coordinates:          Coordinates{Lat: 40.9636, Lng: 28.6301},
			Voyage:               Voyage{LastPort: "Gocek", NextPort: "WIM"},
			PaymentHistoryStatus: PaymentRegular, LoyaltyScore: 40, LoyaltyTier: TierStandard,
		},
	}
}

// SeedLedger returns the opening balances keyed by normalized vessel name.
func SeedLedger() map[string]LedgerEntry {
	ledger := make(map[string]LedgerEntry)
	for _, v := range SeedFleet() {
		ledger[NormalizeName(v.Name)] = LedgerEntry{PaymentHistoryStatus: v.PaymentHistoryStatus}
	}
	ledger[NormalizeName("M/Y Blue Horizon")] = LedgerEntry{Balance: 850, PaymentHistoryStatus: PaymentRecentlyLate}
	ledger[NormalizeName("S/Y Mistral")] = LedgerEntry{Balance: 1200, PaymentHistoryStatus: PaymentChronicallyLate}
	return ledger
}

// SeedTenders returns the tender boats.
func SeedTenders() []Tender {
	return []Tender{
		{ID: "T-01", Name: "ada.sea.wimAlfa", Status: TenderAvailable},
		{ID: "T-02", Name: "ada.sea.wimBravo", Status: TenderAvailable},
		{ID: "T-03", Name: "ada.sea.wimCharlie", Status: TenderMaintenance, Assignment: "Engine overhaul"},
	}
}

// SeedJobs returns the open technical jobs.
func SeedJobs() []MaintenanceJob {
	return []MaintenanceJob{
		{
			ID: "JOB-1023", VesselName: "M/Y Poseidon", JobType: JobHaulOut, Status: JobScheduled,
			ScheduledDate: "2025-11-25 09:00", Contractor: "WIM Tech Services", PartsStatus: "N/A",
			Notes: "Annual antifouling and hull inspection.",
		},
		{
			ID: "JOB-1024", VesselName: "S/Y Mistral", JobType: JobEngineService, Status: JobWaitingParts,
			ScheduledDate: "2025-11-22", Contractor: "Volvo Penta Service", PartsStatus: "ORDERED",
			Notes: "Water pump replacement.",
		},
		{
			ID: "JOB-1025", VesselName: "Tender Charlie", JobType: JobGeneralRepair, Status: JobInProgress,
			ScheduledDate: "2025-11-19", Contractor: "WIM Tech Services", PartsStatus: "IN_STOCK",
			Notes: "Outboard overhaul.",
		},
	}
}

// SeedBerths returns the berth zones ordered by ascending size class,
// with the VIP quay last.
func SeedBerths() []BerthZone {
	return []BerthZone{
		{ID: "C", Label: "Pontoon C", MaxLOA: 15, Depth: 4.0, Capacity: 60, Occupied: 60, Status: ZoneFull},
		{ID: "B", Label: "Pontoon B", MaxLOA: 20, Depth: 4.5, Capacity: 50, Occupied: 42, Status: ZoneAvailable},
		{ID: "A", Label: "Pontoon A", MaxLOA: 25, Depth: 5.5, Capacity: 40, Occupied: 36, Status: ZoneAvailable},
		{ID: "T", Label: "T-Head", MaxLOA: 40, Depth: 6.0, Capacity: 8, Occupied: 3, Status: ZoneAvailable},
		{ID: "VIP", Label: "VIP Quay", MaxLOA: 90, Depth: 8.0, Capacity: 10, Occupied: 4, Status: ZoneAvailable},
	}
}
