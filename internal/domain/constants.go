package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinActivityPeriodMinutes = 5
	MaxActivityPeriodMinutes = 24 * 60
	MaxPackagePeriodDays     = 365
	MaxAvailabilityDays      = 2 * 365
	MaxBookingQuantity       = 1000
	MaxTitleLength           = 255
)

// Defaults
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)
