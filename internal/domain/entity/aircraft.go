// internal/domain/entity/aircraft.go
package entity

// Aircraft is static registry metadata for a registration. It is fetched on
// demand from the registry provider and never persisted.
type Aircraft struct {
	Registration    string `json:"registration"`
	Icao24          string `json:"icao24"` // lower-case hex transponder id
	Type            string `json:"type,omitempty"`
	IcaoType        string `json:"icaoType,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty"`
	RegisteredOwner string `json:"registeredOwner,omitempty"`
	PhotoURL        string `json:"photoUrl,omitempty"`
}

// Airport is a row from the airport reference table, used to decorate
// history segments with human-readable names.
type Airport struct {
	ID      uint   `json:"id"`
	Icao    string `json:"icao"`
	Iata    string `json:"iata,omitempty"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}
