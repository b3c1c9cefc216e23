package mcp

import (
	"context"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetSessionState = mcp.NewTool("get_session_state",
	mcp.WithDescription("Current logging state: active plan, available and selected day, exercises with planned values and logged sets, superset groups, and any error from the last action."),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List the workout plans with their training and rest days."),
)

var toolSelectPlan = mcp.NewTool("select_plan",
	mcp.WithDescription("Make a plan active. Discards any session in progress and selects today's day if the plan has one."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan UUID from list_plans")),
)

var toolSelectDay = mcp.NewTool("select_day",
	mcp.WithDescription("Select a weekday of the active plan and load its exercises. Discards any session in progress."),
	mcp.WithString("weekday", mcp.Required(), mcp.Description("Weekday name, e.g. monday or mon")),
)

var toolStartSession = mcp.NewTool("start_session",
	mcp.WithDescription("Start timing a session for the selected day."),
)

var toolAddSet = mcp.NewTool("add_set",
	mcp.WithDescription("Append an empty set slot to an exercise."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID from get_session_state")),
)

var toolEditSet = mcp.NewTool("edit_set",
	mcp.WithDescription("Set reps and weight of one set. Keeps its completion flag."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID from get_session_state")),
	mcp.WithNumber("set_index", mcp.Required(), mcp.Description("Zero-based set index")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight")),
)

var toolBulkEditSets = mcp.NewTool("bulk_edit_sets",
	mcp.WithDescription("Set reps and weight on every set of an exercise. Keeps each set's completion flag."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID from get_session_state")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight")),
)

var toolToggleSet = mcp.NewTool("toggle_set",
	mcp.WithDescription("Toggle completion of one set. An unlogged set is filled from the planned values and marked complete."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID from get_session_state")),
	mcp.WithNumber("set_index", mcp.Required(), mcp.Description("Zero-based set index")),
)

var toolCompleteExercise = mcp.NewTool("complete_exercise",
	mcp.WithDescription("Mark every set of an exercise complete, filling unlogged sets from planned values."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID from get_session_state")),
)

var toolFinishSession = mcp.NewTool("finish_session",
	mcp.WithDescription("Save the running session and return the stored record."),
)

var toolCancelSession = mcp.NewTool("cancel_session",
	mcp.WithDescription("Discard the running session without saving."),
)

// --- Tool handlers ---

func (h *handlers) getSessionState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.engine.State())
}

func (h *handlers) listPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans := h.engine.Plans()
	if plans == nil {
		plans = []models.WorkoutPlan{}
	}
	return jsonResult(plans)
}

func (h *handlers) selectPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("invalid plan_id: " + err.Error()), nil
	}
	return h.stateAfter("select_plan", h.engine.SelectPlan(ctx, id))
}

func (h *handlers) selectDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("weekday")
	if err != nil {
		return mcp.NewToolResultError("weekday parameter is required"), nil
	}
	wd, err := models.ParseWeekday(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.stateAfter("select_day", h.engine.SelectDay(ctx, wd))
}

func (h *handlers) startSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.stateAfter("start_session", h.engine.StartSession())
}

func (h *handlers) addSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}
	return h.stateAfter("add_set", h.engine.AddSet(id))
}

func (h *handlers) editSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}
	index, err := req.RequireInt("set_index")
	if err != nil {
		return mcp.NewToolResultError("set_index parameter is required"), nil
	}
	reps, weight, errResult := setValues(req)
	if errResult != nil {
		return errResult, nil
	}
	return h.stateAfter("edit_set", h.engine.EditSet(id, index, reps, weight))
}

func (h *handlers) bulkEditSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}
	reps, weight, errResult := setValues(req)
	if errResult != nil {
		return errResult, nil
	}
	return h.stateAfter("bulk_edit_sets", h.engine.BulkEditSets(id, reps, weight))
}

func (h *handlers) toggleSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}
	index, err := req.RequireInt("set_index")
	if err != nil {
		return mcp.NewToolResultError("set_index parameter is required"), nil
	}
	return h.stateAfter("toggle_set", h.engine.ToggleSetCompletion(id, index))
}

func (h *handlers) completeExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}
	return h.stateAfter("complete_exercise", h.engine.MarkExerciseComplete(id))
}

func (h *handlers) finishSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := h.engine.FinishSession(ctx)
	if err != nil {
		h.log.Error("mcp finish_session", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rec)
}

func (h *handlers) cancelSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.stateAfter("cancel_session", h.engine.CancelSession())
}

// stateAfter reports an intent failure as a tool error, or the new state.
func (h *handlers) stateAfter(tool string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		h.log.Debug("mcp "+tool, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(h.engine.State())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func exerciseID(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	raw, err := req.RequireString("exercise_id")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("exercise_id parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("invalid exercise_id: " + err.Error())
	}
	return id, nil
}

func setValues(req mcp.CallToolRequest) (int, float64, *mcp.CallToolResult) {
	reps, err := req.RequireInt("reps")
	if err != nil {
		return 0, 0, mcp.NewToolResultError("reps parameter is required")
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return 0, 0, mcp.NewToolResultError("weight parameter is required")
	}
	if reps < 0 || weight < 0 {
		return 0, 0, mcp.NewToolResultError("reps and weight must not be negative")
	}
	return reps, weight, nil
}
