package repository

import (
	"alcyxob/workout-api/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository defines the interface for interacting with workout data.
// Returned workouts carry raw exercise references; resolving them is the
// caller's job.
type WorkoutRepository interface {
	List(ctx context.Context) ([]domain.Workout, error) // Newest first
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	// Update applies the patch and returns the record as it is after the update.
	Update(ctx context.Context, id primitive.ObjectID, patch *domain.WorkoutPatch) (*domain.Workout, error)
	// Delete removes the workout and returns the record that was removed.
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
}

// ExerciseRepository gives read access to the exercise library.
type ExerciseRepository interface {
	// GetByIDs returns the exercises that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
}

// WorkoutPlanRepository covers the single write this service makes to plans.
type WorkoutPlanRepository interface {
	// PullWorkout removes every membership entry for workoutID from all plans
	// and returns the number of plans modified.
	PullWorkout(ctx context.Context, workoutID primitive.ObjectID) (int64, error)
}

// Transactor runs fn so that every repository call made with the ctx it
// receives commits or aborts together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactorFunc adapts a function to Transactor.
type TransactorFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f TransactorFunc) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// NoTransaction runs fn directly. Writes made inside it are independent and
// are not rolled back if a later one fails.
var NoTransaction Transactor = TransactorFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
