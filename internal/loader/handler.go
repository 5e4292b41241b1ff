package loader

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medsynth/medsynth/internal/config"
)

// Operations is the surface the HTTP handler dispatches to. Loader satisfies
// it; tests substitute a mock.
type Operations interface {
	SetupDatabase(ctx context.Context) error
	LoadData(ctx context.Context, truncate bool) error
}

// Handler exposes the loader operations behind a single action-dispatch
// endpoint.
type Handler struct {
	ops    Operations
	logger zerolog.Logger
}

func NewHandler(ops Operations, logger zerolog.Logger) *Handler {
	return &Handler{ops: ops, logger: logger}
}

// RegisterRoutes mounts the dispatch endpoint. Any method is accepted so the
// action can arrive as a query parameter or a JSON body.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Any("/", h.Dispatch)
}

type actionRequest struct {
	Action string `json:"action"`
}

type actionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const invalidActionMessage = "Invalid or missing action. Use 'setup_db', 'load_data', or 'setup_and_load'."

// Dispatch reads the requested action from the query string, falling back to
// a JSON body, and runs the matching operation.
func (h *Handler) Dispatch(c echo.Context) error {
	action := c.QueryParam("action")
	if action == "" {
		var req actionRequest
		// Body is optional; ignore bind errors and fall through to the
		// invalid-action response.
		_ = c.Bind(&req)
		action = req.Action
	}

	ctx := c.Request().Context()
	h.logger.Info().Str("action", action).Msg("dispatching action")

	switch action {
	case "setup_db":
		return h.respond(c, "Database setup completed successfully.", h.ops.SetupDatabase(ctx))
	case "load_data":
		return h.respond(c, "Data loading completed successfully.", h.ops.LoadData(ctx, true))
	case "setup_and_load":
		if err := h.ops.SetupDatabase(ctx); err != nil {
			return h.respond(c, "", err)
		}
		return h.respond(c, "Database setup and data loading completed successfully.", h.ops.LoadData(ctx, false))
	default:
		return c.JSON(http.StatusBadRequest, actionResponse{
			Status:  "error",
			Message: invalidActionMessage,
		})
	}
}

// respond maps an operation result to the wire format. Configuration errors
// propagate raw so the framework's default handler reports them; operational
// errors become a structured 500.
func (h *Handler) respond(c echo.Context, successMessage string, err error) error {
	if err != nil {
		var missing *config.MissingVarsError
		if errors.As(err, &missing) {
			return err
		}
		h.logger.Error().Err(err).Msg("action failed")
		return c.JSON(http.StatusInternalServerError, actionResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, actionResponse{
		Status:  "success",
		Message: successMessage,
	})
}
