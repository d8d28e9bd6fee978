package service

import "parking-violations/internal/models"

// SeedViolations returns the reference data set the service starts with.
func SeedViolations() []models.Violation {
	return []models.Violation{
		{ID: "1", Car: models.Car{Plate: "ABC123", State: "AZ"}, Location: "123 Main St, Phoenix", Date: "2023-04-15T10:30:00Z", Resolved: false},
		{ID: "2", Car: models.Car{Plate: "XYZ789", State: "FL"}, Location: "456 Oak Ave, Miami", Date: "2023-04-14T14:45:00Z", Resolved: true},
		{ID: "3", Car: models.Car{Plate: "DEF456", State: "CA"}, Location: "789 Pine Rd, San Francisco", Date: "2023-04-16T09:15:00Z", Resolved: false},
		{ID: "4", Car: models.Car{Plate: "GHI789", State: "NY"}, Location: "321 Elm St, New York", Date: "2023-04-13T16:20:00Z", Resolved: false},
		{ID: "5", Car: models.Car{Plate: "JKL012", State: "TX"}, Location: "654 Maple Dr, Austin", Date: "2023-04-12T11:10:00Z", Resolved: true},
		{ID: "6", Car: models.Car{Plate: "MNO345", State: "CA"}, Location: "765 Cedar St, Los Angeles", Date: "2023-04-11T13:30:00Z", Resolved: false},
		{ID: "7", Car: models.Car{Plate: "PQR678", State: "IL"}, Location: "123 Main St, Chicago", Date: "2023-04-15T10:30:00Z", Resolved: false},
		{ID: "8", Car: models.Car{Plate: "STU901", State: "TX"}, Location: "765 Cedar St, Dallas", Date: "2023-04-11T13:30:00Z", Resolved: false},
	}
}
