// internal/domain/workout_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan groups workouts into a plan. This service only touches plans to
// drop memberships of deleted workouts.
type WorkoutPlan struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Name      string                  `bson:"name" json:"name"`
	Workouts  []WorkoutPlanMembership `bson:"workouts" json:"workouts"`
	CreatedAt time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutPlanMembership places a workout in a plan.
type WorkoutPlanMembership struct {
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	DayOfWeek *int               `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // 1 (Mon) - 7 (Sun)
	Sequence  int                `bson:"sequence,omitempty" json:"sequence,omitempty"`
}
