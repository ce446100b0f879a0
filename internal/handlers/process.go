package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agroxeque/ortho-gateway/internal/models"
)

// TaskRunner executes one background processing run to completion.
type TaskRunner interface {
	Run(ctx context.Context, projectID, plotID string) error
}

// Dispatcher schedules a task off the request path. The request
// handler never blocks on the task itself; a Dispatcher error is the
// only background-related failure the synchronous caller ever sees.
type Dispatcher func(task func()) error

// GoDispatcher runs the task on its own goroutine with no admission
// control, matching the gateway's unbounded-concurrency contract.
func GoDispatcher(task func()) error {
	go task()
	return nil
}

// ProcessHandler is the HTTP-facing surface of the gateway.
type ProcessHandler struct {
	runner   TaskRunner
	dispatch Dispatcher
	logger   zerolog.Logger
}

func NewProcessHandler(runner TaskRunner, dispatch Dispatcher, logger zerolog.Logger) *ProcessHandler {
	if dispatch == nil {
		dispatch = GoDispatcher
	}
	return &ProcessHandler{
		runner:   runner,
		dispatch: dispatch,
		logger:   logger,
	}
}

// Process handles POST /processar: validate, schedule the run,
// acknowledge. Failures inside the scheduled run never reach this
// response; they are observable only via the webhook channel.
func (h *ProcessHandler) Process(c *gin.Context) {
	var req models.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Mensagem: "corpo da requisição inválido"})
		return
	}

	if req.IDProjeto == "" || req.IDTalhao == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Mensagem: "ID de projeto e talhão são obrigatórios"})
		return
	}

	projectID, plotID := req.IDProjeto, req.IDTalhao
	err := h.dispatch(func() {
		// Detached from the request context: the response has
		// already returned when the run executes.
		if err := h.runner.Run(context.Background(), projectID, plotID); err != nil {
			h.logger.Error().Err(err).
				Str("id_projeto", projectID).
				Str("id_talhao", plotID).
				Msg("background run failed")
		}
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to schedule processing run")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Mensagem: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, models.ProcessAck{
		IDProjeto: projectID,
		IDTalhao:  plotID,
		Status:    models.StatusStarted,
		Mensagem:  "Processamento iniciado com sucesso",
	})
}

// Status handles GET /status/:id_projeto. No durable run state
// exists yet, so this reports a fixed in-progress snapshot with a
// caveat; it is the extension seam for a real status store.
func (h *ProcessHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusQueryResponse{
		IDProjeto: c.Param("id_projeto"),
		Status:    models.StatusInProgress,
		Mensagem:  "Verificação de status real não implementada nesta versão",
	})
}
