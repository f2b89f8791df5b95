package model

// Doctor is read-only reference data fetched per specialty.
type Doctor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}
