package domain

import "time"

// Activity actions recorded for recipe mutations.
const (
	ActionRecipeCreated = "recipe_created"
	ActionRecipeUpdated = "recipe_updated"
	ActionRecipeDeleted = "recipe_deleted"
)

// Activity is an audit-trail entry for a mutation performed by a user.
type Activity struct {
	UserID    string    `bson:"user_id"`
	Action    string    `bson:"action"`
	RecipeID  int64     `bson:"recipe_id"`
	Title     string    `bson:"title"`
	Timestamp time.Time `bson:"timestamp"`
}
