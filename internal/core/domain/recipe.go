package domain

import (
	"errors"
	"strconv"
	"time"
)

var ErrRecipeNotFound = errors.New("recipe not found")
var ErrInvalidPrice = errors.New("price must be a non-negative decimal")
var ErrInvalidTime = errors.New("time_minutes must be non-negative")

// Recipe is owned by exactly one user, assigned at creation and immutable
// afterwards. Price is carried as a decimal string so fixed precision
// survives the round trip through JSON and the store.
type Recipe struct {
	ID          int64     `json:"id" bson:"_id"`
	UserID      string    `json:"-" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	TimeMinutes int       `json:"time_minutes" bson:"time_minutes"`
	Price       string    `json:"price" bson:"price"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Link        string    `json:"link,omitempty" bson:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// String identifies the recipe in logs and diagnostics by title.
func (r *Recipe) String() string {
	return r.Title
}

// ValidatePrice reports whether s parses as a non-negative decimal.
func ValidatePrice(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return ErrInvalidPrice
	}
	return nil
}
