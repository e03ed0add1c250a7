package product

import "time"

type Product struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	Weight      string    `json:"weight" db:"weight"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Update carries a partial product mutation; nil fields keep their
// stored value.
type Update struct {
	Title       *string
	Description *string
	Image       *string
	Weight      *string
	Category    *string
}
