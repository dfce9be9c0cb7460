// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch or persist data,
// abstracting SQL away from the service layer. Absence of a row is
// reported as a nil result (cities) or model.ErrNotFound (countries);
// every infrastructure failure comes back as *model.StoreError.
package repository
