package service

import (
	"alcyxob/workout-api/internal/domain"
	"alcyxob/workout-api/internal/logger"
	"alcyxob/workout-api/internal/observability"
	"alcyxob/workout-api/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

// CascadeError reports that a workout was removed but its plan memberships
// could not be. Unless the delete ran in a transaction, the workout stays
// deleted and plans may still reference WorkoutID.
type CascadeError struct {
	WorkoutID  primitive.ObjectID
	RolledBack bool
	Err        error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("remove workout %s from plans: %v", e.WorkoutID.Hex(), e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// --- Service Interface ---
type WorkoutService interface {
	ListWorkouts(ctx context.Context) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, id primitive.ObjectID, patch *domain.WorkoutPatch) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
}

// Option customises a workout service.
type Option func(*workoutService)

// WithTransactor makes DeleteWorkout run the delete and the plan cleanup in
// one transaction.
func WithTransactor(tx repository.Transactor) Option {
	return func(s *workoutService) {
		if tx != nil {
			s.tx = tx
			s.transactional = true
		}
	}
}

// WithLogger sets the logger used for cascade failures.
func WithLogger(log logger.Logger) Option {
	return func(s *workoutService) {
		if log != nil {
			s.log = log
		}
	}
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo   repository.WorkoutRepository
	exerciseRepo  repository.ExerciseRepository
	planRepo      repository.WorkoutPlanRepository
	tx            repository.Transactor
	transactional bool
	log           logger.Logger
}

// NewWorkoutService creates a new instance of workoutService. Without
// WithTransactor, deletes are best effort: the workout delete and the plan
// cleanup are independent writes.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	planRepo repository.WorkoutPlanRepository,
	opts ...Option,
) WorkoutService {
	s := &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		planRepo:     planRepo,
		tx:           repository.NoTransaction,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListWorkouts returns every workout, newest first, with exercises resolved.
func (s *workoutService) ListWorkouts(ctx context.Context) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	refs := make([]*domain.Workout, len(workouts))
	for i := range workouts {
		refs[i] = &workouts[i]
	}
	if err := s.resolveExercises(ctx, refs...); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout returns one workout with exercises resolved.
func (s *workoutService) GetWorkout(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if err := s.resolveExercises(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// CreateWorkout validates and stores a new workout. The returned record has
// its ID and timestamps set and its exercises resolved.
func (s *workoutService) CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if err := domain.Validate(workout); err != nil {
		return nil, err
	}
	// Server-assigned fields are never taken from the payload.
	workout.ID = primitive.NilObjectID
	for i := range workout.Exercises {
		workout.Exercises[i].Exercise = nil
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	s.resolveAfterWrite(ctx, workout)
	return workout, nil
}

// UpdateWorkout applies a partial update and returns the updated record.
func (s *workoutService) UpdateWorkout(ctx context.Context, id primitive.ObjectID, patch *domain.WorkoutPatch) (*domain.Workout, error) {
	if err := domain.ValidatePatch(patch); err != nil {
		return nil, err
	}
	workout, err := s.workoutRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	s.resolveAfterWrite(ctx, workout)
	return workout, nil
}

// DeleteWorkout removes a workout and then pulls it out of every plan. When
// no workout matched, plans are left alone and ErrWorkoutNotFound is returned.
func (s *workoutService) DeleteWorkout(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var (
		deleted *domain.Workout
		pulled  int64
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		workout, err := s.workoutRepo.Delete(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrWorkoutNotFound
			}
			return err
		}

		n, err := s.planRepo.PullWorkout(ctx, workout.ID)
		if err != nil {
			return &CascadeError{WorkoutID: workout.ID, RolledBack: s.transactional, Err: err}
		}
		deleted, pulled = workout, n
		return nil
	})
	if err != nil {
		var cascadeErr *CascadeError
		if errors.As(err, &cascadeErr) {
			s.logCascadeFailure(cascadeErr)
		}
		return nil, err
	}

	observability.RecordCascade(pulled)
	s.log.Debug("workout deleted", "workout_id", deleted.ID.Hex(), "plans_modified", pulled)
	s.resolveAfterWrite(ctx, deleted)
	return deleted, nil
}

func (s *workoutService) logCascadeFailure(err *CascadeError) {
	if err.RolledBack {
		s.log.Warn("workout delete rolled back: plan cleanup failed",
			"workout_id", err.WorkoutID.Hex(), "error", err.Err)
		return
	}
	observability.RecordCascadeFailure()
	s.log.Error("workout deleted but plan cleanup failed; plans may still reference it",
		"workout_id", err.WorkoutID.Hex(), "error", err.Err)
}

// resolveAfterWrite resolves exercises on a record that is already written.
// The write stands either way, so a failed lookup is logged and the entries
// are returned with exercise left null.
func (s *workoutService) resolveAfterWrite(ctx context.Context, workout *domain.Workout) {
	if err := s.resolveExercises(ctx, workout); err != nil {
		s.log.Warn("could not resolve exercises after write",
			"workout_id", workout.ID.Hex(), "error", err)
	}
}

// resolveExercises attaches the referenced exercises to every entry using a
// single batch lookup. Entries whose exercise no longer exists stay nil.
func (s *workoutService) resolveExercises(ctx context.Context, workouts ...*domain.Workout) error {
	for _, w := range workouts {
		if w.Exercises == nil {
			w.Exercises = []domain.WorkoutExercise{}
		}
	}
	ids := domain.ExerciseIDs(workouts...)
	if len(ids) == 0 {
		return nil
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]*domain.Exercise, len(exercises))
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}

	for _, w := range workouts {
		for j := range w.Exercises {
			w.Exercises[j].Exercise = byID[w.Exercises[j].ExerciseID]
		}
	}
	return nil
}
