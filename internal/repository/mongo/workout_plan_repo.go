// internal/repository/mongo/workout_plan_repo.go
package mongo

import (
	"alcyxob/workout-api/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutPlanCollectionName = "workoutplans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// PullWorkout strips memberships of workoutID out of every plan. The filter
// is empty: any plan may reference the workout.
func (r *mongoWorkoutPlanRepository) PullWorkout(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	update := bson.M{
		"$pull": bson.M{
			"workouts": bson.M{"workoutId": workoutID},
		},
	}
	result, err := r.collection.UpdateMany(ctx, bson.M{}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Multikey index for finding plans that reference a workout
			Keys:    bson.D{{Key: "workouts.workoutId", Value: 1}},
			Options: options.Index().SetName("workoutplans_workout_id"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
