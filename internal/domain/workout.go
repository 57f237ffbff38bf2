package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a set of exercises performed together.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"notblank,max=200"`
	Description string             `bson:"description,omitempty" json:"description,omitempty" validate:"max=2000"`
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises" validate:"dive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"` // Default list order, newest first
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutExercise references an Exercise and carries the workout-specific
// execution details for it.
type WorkoutExercise struct {
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId" validate:"required"`
	Sets        int                `bson:"sets,omitempty" json:"sets,omitempty" validate:"gte=0"`
	Reps        int                `bson:"reps,omitempty" json:"reps,omitempty" validate:"gte=0"`
	Weight      float64            `bson:"weight,omitempty" json:"weight,omitempty" validate:"gte=0"` // kg
	RestSeconds int                `bson:"restSeconds,omitempty" json:"restSeconds,omitempty" validate:"gte=0"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`

	// Exercise is filled in from the exercises collection and is never
	// persisted. Null when the referenced exercise no longer exists.
	Exercise *Exercise `bson:"-" json:"exercise"`
}

// WorkoutPatch is a partial update. Nil fields are left untouched.
type WorkoutPatch struct {
	Name        *string            `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string            `json:"description" validate:"omitempty,max=2000"`
	Exercises   *[]WorkoutExercise `json:"exercises" validate:"omitempty,dive"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *WorkoutPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Description == nil && p.Exercises == nil)
}

// ExerciseIDs returns the distinct exercise ids referenced by the workouts,
// in first-seen order.
func ExerciseIDs(workouts ...*Workout) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, w := range workouts {
		if w == nil {
			continue
		}
		for _, ex := range w.Exercises {
			if _, ok := seen[ex.ExerciseID]; ok {
				continue
			}
			seen[ex.ExerciseID] = struct{}{}
			ids = append(ids, ex.ExerciseID)
		}
	}
	return ids
}
