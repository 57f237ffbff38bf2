// internal/api/workout_handler.go
package api

import (
	"alcyxob/workout-api/internal/domain"
	"alcyxob/workout-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const workoutNotFoundMessage = "Workout not found"

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// GetAllWorkouts godoc
// @Summary List workouts
// @Description Returns every workout, newest first, with exercise references resolved.
// @Tags Workouts
// @Produce json
// @Success 200 {array} domain.Workout
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) GetAllWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary Get a workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 404 {object} gin.H "Workout not found (also for malformed IDs)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		abortWithError(c, http.StatusNotFound, workoutNotFoundMessage)
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CreateWorkout godoc
// @Summary Create a workout
// @Description Validation failures are reported as 500 like any other failure.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body domain.Workout true "Workout"
// @Success 200 {object} domain.Workout
// @Failure 500 {object} gin.H "Validation or storage error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req domain.Workout
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), &req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// UpdateWorkout godoc
// @Summary Update a workout
// @Description Applies the fields present in the body and returns the updated workout.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param patch body domain.WorkoutPatch true "Fields to change"
// @Success 200 {object} domain.Workout
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Validation or storage error"
// @Router /workouts/{id} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		abortWithError(c, http.StatusNotFound, workoutNotFoundMessage)
		return
	}

	var patch domain.WorkoutPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), id, &patch)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Description Deletes the workout and removes it from every workout plan.
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout "The deleted workout"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Storage error or failed plan cleanup"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		abortWithError(c, http.StatusNotFound, workoutNotFoundMessage)
		return
	}

	workout, err := h.workoutService.DeleteWorkout(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// respondWithServiceError maps service errors to HTTP responses. Validation
// and storage failures share the 500 response and carry the error message.
func respondWithServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrWorkoutNotFound) {
		abortWithError(c, http.StatusNotFound, workoutNotFoundMessage)
		return
	}
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, err.Error())
}
