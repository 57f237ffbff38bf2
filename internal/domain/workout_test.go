package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validWorkout() *Workout {
	return &Workout{
		Name: "Push day",
		Exercises: []WorkoutExercise{
			{ExerciseID: primitive.NewObjectID(), Sets: 4, Reps: 8, Weight: 60},
			{ExerciseID: primitive.NewObjectID(), Sets: 3, Reps: 12, RestSeconds: 90},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("Should accept a complete workout", func(t *testing.T) {
		require.NoError(t, Validate(validWorkout()))
	})

	t.Run("Should accept a workout without exercises", func(t *testing.T) {
		require.NoError(t, Validate(&Workout{Name: "Rest day"}))
	})

	t.Run("Should require a name", func(t *testing.T) {
		w := validWorkout()
		w.Name = "   "
		err := Validate(w)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("Should cap the name length", func(t *testing.T) {
		w := validWorkout()
		w.Name = strings.Repeat("x", 201)
		assert.ErrorContains(t, Validate(w), "name must be at most 200")
	})

	t.Run("Should require exercise ids", func(t *testing.T) {
		w := validWorkout()
		w.Exercises[1].ExerciseID = primitive.NilObjectID
		err := Validate(w)
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "exercises[1].exerciseId is required")
	})

	t.Run("Should reject negative sets", func(t *testing.T) {
		w := validWorkout()
		w.Exercises[0].Sets = -1
		assert.ErrorContains(t, Validate(w), "exercises[0].sets must be greater than or equal to 0")
	})

	t.Run("Should reject a nil workout", func(t *testing.T) {
		assert.ErrorIs(t, Validate(nil), ErrValidation)
	})
}

func TestValidatePatch(t *testing.T) {
	t.Run("Should reject an empty patch", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePatch(&WorkoutPatch{}), ErrValidation)
	})

	t.Run("Should accept a name only patch", func(t *testing.T) {
		name := "Pull day"
		require.NoError(t, ValidatePatch(&WorkoutPatch{Name: &name}))
	})

	t.Run("Should reject a blank name", func(t *testing.T) {
		name := ""
		assert.ErrorContains(t, ValidatePatch(&WorkoutPatch{Name: &name}), "name is required")
	})

	t.Run("Should validate replaced exercises", func(t *testing.T) {
		exercises := []WorkoutExercise{{Sets: 3}}
		err := ValidatePatch(&WorkoutPatch{Exercises: &exercises})
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "exerciseId is required")
	})

	t.Run("Should allow clearing exercises", func(t *testing.T) {
		exercises := []WorkoutExercise{}
		require.NoError(t, ValidatePatch(&WorkoutPatch{Exercises: &exercises}))
	})
}

func TestExerciseIDs(t *testing.T) {
	t.Run("Should return distinct ids in first seen order", func(t *testing.T) {
		a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
		w1 := &Workout{Exercises: []WorkoutExercise{{ExerciseID: a}, {ExerciseID: b}, {ExerciseID: a}}}
		w2 := &Workout{Exercises: []WorkoutExercise{{ExerciseID: c}, {ExerciseID: b}}}

		assert.Equal(t, []primitive.ObjectID{a, b, c}, ExerciseIDs(w1, nil, w2))
	})

	t.Run("Should return nothing for workouts without exercises", func(t *testing.T) {
		assert.Empty(t, ExerciseIDs(&Workout{}))
	})
}
