package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity kinds.
const (
	ActivityRegister        = "register"
	ActivityLogin           = "login"
	ActivityIntakeAdded     = "intake_added"
	ActivityReminderAdded   = "reminder_added"
	ActivityReminderToggled = "reminder_toggled"
	ActivityReminderDeleted = "reminder_deleted"
	ActivityGoalUpdated     = "goal_updated"
	ActivityThemeUpdated    = "theme_updated"
	ActivityExported        = "exported"
)

// Activity is a single audit event stored in MongoDB.
type Activity struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	UserID    int64              `json:"user_id"    bson:"user_id"`
	Kind      string             `json:"kind"       bson:"kind"`
	Detail    string             `json:"detail"     bson:"detail"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
