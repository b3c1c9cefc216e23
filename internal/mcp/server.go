package mcp

import (
	"log/slog"

	"github.com/claude/ironlog/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server exposing the logging intents as tools and the
// engine state as a resource.
func New(engine *session.Engine, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronLog workout logger. Select a plan and day, start a session, log sets, then finish it. "+
			"Exercise IDs come from get_session_state; set indexes are zero-based."),
	)

	h := &handlers{engine: engine, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetSessionState, Handler: h.getSessionState},
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
		server.ServerTool{Tool: toolSelectPlan, Handler: h.selectPlan},
		server.ServerTool{Tool: toolSelectDay, Handler: h.selectDay},
		server.ServerTool{Tool: toolStartSession, Handler: h.startSession},
		server.ServerTool{Tool: toolAddSet, Handler: h.addSet},
		server.ServerTool{Tool: toolEditSet, Handler: h.editSet},
		server.ServerTool{Tool: toolBulkEditSets, Handler: h.bulkEditSets},
		server.ServerTool{Tool: toolToggleSet, Handler: h.toggleSet},
		server.ServerTool{Tool: toolCompleteExercise, Handler: h.completeExercise},
		server.ServerTool{Tool: toolFinishSession, Handler: h.finishSession},
		server.ServerTool{Tool: toolCancelSession, Handler: h.cancelSession},
	)

	s.AddResources(
		server.ServerResource{Resource: resSessionState, Handler: h.sessionState},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	engine *session.Engine
	log    *slog.Logger
}

var resSessionState = mcp.NewResource(
	"ironlog://session_state",
	"Session State",
	mcp.WithResourceDescription("Current plan, selected day, exercises with logged sets, and whether the session can be finished"),
	mcp.WithMIMEType("application/json"),
)
