package model

// User is a denormalized cache of a provider member's display name, lazily
// created the first time that member performs a write. It may go stale
// relative to the provider; it is load-bearing for display only, never
// authorization.
type User struct {
	ID   string `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}
