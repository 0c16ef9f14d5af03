// Package models contains database model definitions.
package models

// Setting is a named JSON blob in the settings table.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique;size:100"`
	Value []byte
}
