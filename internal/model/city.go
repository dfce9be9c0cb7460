package model

// City is a row of the city table.
//
// The db tags are the column mapping used by pgx.RowToStructByName;
// the json tags are the wire format. A draft City (input to
// registration) has a zero ID; a persisted City never does.
type City struct {
	ID          int64  `json:"id" db:"ID"`
	Name        string `json:"name" db:"Name" validate:"required"`
	CountryCode string `json:"countryCode" db:"CountryCode" validate:"required,len=3"`
	District    string `json:"district" db:"District" validate:"required"`
	Population  int64  `json:"population" db:"Population" validate:"min=0,max=2147483647"`
}

// IsPersisted reports whether the store has assigned an identifier.
func (c City) IsPersisted() bool {
	return c.ID != 0
}

// CountryPopulation is the read-only projection of a country row
// needed to compute population ratios.
type CountryPopulation struct {
	Code       string `json:"code" db:"Code"`
	Population int64  `json:"population" db:"Population"`
}
