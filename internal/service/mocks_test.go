package service

import (
	"alcyxob/workout-api/internal/domain"
	"alcyxob/workout-api/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- testify mocks ---

type mockWorkoutRepo struct{ mock.Mock }

func (m *mockWorkoutRepo) List(ctx context.Context) ([]domain.Workout, error) {
	args := m.Called(ctx)
	workouts, _ := args.Get(0).([]domain.Workout)
	return workouts, args.Error(1)
}

func (m *mockWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	workout, _ := args.Get(0).(*domain.Workout)
	return workout, args.Error(1)
}

func (m *mockWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockWorkoutRepo) Update(ctx context.Context, id primitive.ObjectID, patch *domain.WorkoutPatch) (*domain.Workout, error) {
	args := m.Called(ctx, id, patch)
	workout, _ := args.Get(0).(*domain.Workout)
	return workout, args.Error(1)
}

func (m *mockWorkoutRepo) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	workout, _ := args.Get(0).(*domain.Workout)
	return workout, args.Error(1)
}

type mockExerciseRepo struct{ mock.Mock }

func (m *mockExerciseRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	args := m.Called(ctx, ids)
	exercises, _ := args.Get(0).([]domain.Exercise)
	return exercises, args.Error(1)
}

type mockPlanRepo struct{ mock.Mock }

func (m *mockPlanRepo) PullWorkout(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, workoutID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ repository.WorkoutRepository     = (*mockWorkoutRepo)(nil)
	_ repository.ExerciseRepository    = (*mockExerciseRepo)(nil)
	_ repository.WorkoutPlanRepository = (*mockPlanRepo)(nil)
)

// --- in-memory store ---

// memStore keeps workouts, exercises and plans in memory and implements all
// three repositories. createdAt comes from a clock that ticks one second per
// insert so ordering is deterministic.
type memStore struct {
	mu        sync.Mutex
	clock     time.Time
	workouts  map[primitive.ObjectID]domain.Workout
	exercises map[primitive.ObjectID]domain.Exercise
	plans     []domain.WorkoutPlan
}

func newMemStore() *memStore {
	return &memStore{
		clock:     time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC),
		workouts:  map[primitive.ObjectID]domain.Workout{},
		exercises: map[primitive.ObjectID]domain.Exercise{},
	}
}

func (s *memStore) addExercise(name string) domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex := domain.Exercise{ID: primitive.NewObjectID(), Name: name, CreatedAt: s.clock, UpdatedAt: s.clock}
	s.exercises[ex.ID] = ex
	return ex
}

func (s *memStore) addPlan(name string, workoutIDs ...primitive.ObjectID) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan := domain.WorkoutPlan{ID: primitive.NewObjectID(), Name: name}
	for i, id := range workoutIDs {
		plan.Workouts = append(plan.Workouts, domain.WorkoutPlanMembership{WorkoutID: id, Sequence: i + 1})
	}
	s.plans = append(s.plans, plan)
	return plan.ID
}

func (s *memStore) plan(id primitive.ObjectID) domain.WorkoutPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			p.Workouts = append([]domain.WorkoutPlanMembership(nil), p.Workouts...)
			return p
		}
	}
	return domain.WorkoutPlan{}
}

func copyWorkout(w domain.Workout) domain.Workout {
	w.Exercises = append([]domain.WorkoutExercise(nil), w.Exercises...)
	return w
}

func (s *memStore) List(_ context.Context) ([]domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Workout, 0, len(s.workouts))
	for _, w := range s.workouts {
		out = append(out, copyWorkout(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w = copyWorkout(w)
	return &w, nil
}

func (s *memStore) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Second)
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = s.clock
	workout.UpdatedAt = s.clock
	s.workouts[workout.ID] = copyWorkout(*workout)
	return workout.ID, nil
}

func (s *memStore) Update(_ context.Context, id primitive.ObjectID, patch *domain.WorkoutPatch) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Description != nil {
		w.Description = *patch.Description
	}
	if patch.Exercises != nil {
		w.Exercises = append([]domain.WorkoutExercise{}, (*patch.Exercises)...)
	}
	w.UpdatedAt = s.clock.Add(time.Minute)
	s.workouts[id] = w
	w = copyWorkout(w)
	return &w, nil
}

func (s *memStore) Delete(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.workouts, id)
	return &w, nil
}

func (s *memStore) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Exercise
	for _, id := range ids {
		if ex, ok := s.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (s *memStore) PullWorkout(_ context.Context, workoutID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for i := range s.plans {
		kept := s.plans[i].Workouts[:0]
		for _, m := range s.plans[i].Workouts {
			if m.WorkoutID != workoutID {
				kept = append(kept, m)
			}
		}
		if len(kept) != len(s.plans[i].Workouts) {
			modified++
		}
		s.plans[i].Workouts = kept
	}
	return modified, nil
}
