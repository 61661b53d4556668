package seeders

import "chainsaw-registry/internal/entities"

type sampleEquipment struct {
	FirstName, LastName, Address, Contact string
	Brand, Model, SerialNumber            string
	GuideBarLength, HorsePower            float64
	FuelType, IntendedUse                 string
	IsNew                                 bool
	// Dates are relative to seeding time so the dashboard and validity
	// buckets always have something to show.
	AcquiredYearsAgo    int
	RegisteredMonthsAgo int
}

var equipmentsData = []sampleEquipment{
	{
		FirstName: "Juan", LastName: "Dela Cruz", Address: "Purok 3, Barangay San Isidro, Tanay, Rizal", Contact: "09171234567",
		Brand: "Stihl", Model: "MS 250", SerialNumber: "STL-250-0001", GuideBarLength: 18, HorsePower: 3.1,
		FuelType: entities.FuelGas, IntendedUse: entities.UseWoodProcessing, IsNew: true,
		AcquiredYearsAgo: 0, RegisteredMonthsAgo: 0,
	},
	{
		FirstName: "Maria", LastName: "Santos", Address: "Sitio Malinis, Barangay Lumbangan, Nasugbu, Batangas", Contact: "09181112222",
		Brand: "Husqvarna", Model: "455 Rancher", SerialNumber: "HQV-455-0142", GuideBarLength: 20, HorsePower: 3.5,
		FuelType: entities.FuelGas, IntendedUse: entities.UsePrivatePlantationCutting, IsNew: false,
		AcquiredYearsAgo: 1, RegisteredMonthsAgo: 1,
	},
	{
		FirstName: "Pedro", LastName: "Reyes", Address: "Municipal Hall Compound, Poblacion, Infanta, Quezon", Contact: "09223334444",
		Brand: "Makita", Model: "UC4051A", SerialNumber: "MKT-4051-0007", GuideBarLength: 16, HorsePower: 2.7,
		FuelType: entities.FuelElectric, IntendedUse: entities.UseGovernmentLegal, IsNew: true,
		AcquiredYearsAgo: 1, RegisteredMonthsAgo: 2,
	},
	{
		FirstName: "Rosa", LastName: "Villanueva", Address: "Barangay Hall, Barangay Mabini, Real, Quezon", Contact: "09335556666",
		Brand: "Echo", Model: "CS-590", SerialNumber: "ECH-590-0033", GuideBarLength: 20, HorsePower: 4.0,
		FuelType: entities.FuelGas, IntendedUse: entities.UseBarangayOfficialCutting, IsNew: false,
		AcquiredYearsAgo: 2, RegisteredMonthsAgo: 4,
	},
	{
		FirstName: "Antonio", LastName: "Garcia", Address: "Km 12, National Highway, Barangay Bagong Silang, Rodriguez, Rizal", Contact: "09447778888",
		Brand: "Stihl", Model: "MS 462", SerialNumber: "STL-462-0219", GuideBarLength: 25, HorsePower: 6.0,
		FuelType: entities.FuelDiesel, IntendedUse: entities.UseOther, IsNew: false,
		AcquiredYearsAgo: 3, RegisteredMonthsAgo: 5,
	},
}
