package models

// Categories is the fixed service taxonomy. It is loaded once at process
// start and never mutated at runtime.
var Categories = []string{
	"House washing",
	"Roof soft wash",
	"Driveway sealing / patio cleaning",
	"Window cleaning",
	"Gutter cleaning",
	"HVAC services",
	"Pool care",
	"Pressure washing",
	"Landscaping",
	"Pest control",
	"Others",
}

// KnownCategory reports whether name exactly matches an entry in the
// taxonomy.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
