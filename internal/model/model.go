// Package model holds the gorm-mapped records of the service.
package model

// All returns every record type in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Draft{},
	}
}
