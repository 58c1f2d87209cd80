// Package lambda adapts the record store to AWS Lambda behind API Gateway.
package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/roster/store"
)

// Handler translates API Gateway proxy events into store operations.
// It serves the same routes as the HTTP API:
//
//	POST   /records
//	GET    /records
//	GET    /records/{name}
//	PUT    /records/{name}
//	DELETE /records/{name}
//
// This type is designed to be passed to lambda.Start via HandleRequest.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a Lambda handler. A nil logger falls back to
// slog.Default.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
	}
}

type recordRequest struct {
	Name   string    `json:"name"`
	Age    int       `json:"age"`
	Scores []float64 `json:"scores"`
}

type recordResponse struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Age     int       `json:"age"`
	Scores  []float64 `json:"scores"`
	Average float64   `json:"average"`
}

// HandleRequest routes a single API Gateway proxy event.
func (h *Handler) HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	name, hasName := req.PathParameters["name"]
	if !hasName {
		// Handle both "/records" and proxy integrations using {proxy+}.
		trimmed := strings.TrimPrefix(req.Path, "/records")
		trimmed = strings.Trim(trimmed, "/")
		if trimmed != "" {
			name = trimmed
			hasName = true
		}
	}

	h.logger.Info("handling request",
		"method", req.HTTPMethod,
		"path", req.Path,
	)

	switch {
	case req.HTTPMethod == http.MethodPost && !hasName:
		return h.create(ctx, req.Body)
	case req.HTTPMethod == http.MethodGet && !hasName:
		return h.list(ctx)
	case req.HTTPMethod == http.MethodGet:
		return h.get(ctx, name)
	case req.HTTPMethod == http.MethodPut:
		return h.update(ctx, name, req.Body)
	case req.HTTPMethod == http.MethodDelete:
		return h.delete(ctx, name)
	default:
		return errorResponse(http.StatusMethodNotAllowed, errors.New("method not allowed")), nil
	}
}

func (h *Handler) create(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	var req recordRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errorResponse(http.StatusBadRequest, err), nil
	}

	rec, err := h.store.Create(ctx, req.Name, req.Age, req.Scores)
	if err != nil {
		return h.storeErrorResponse(err), nil
	}
	return jsonResponse(http.StatusCreated, toResponse(rec)), nil
}

func (h *Handler) list(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	records, err := h.store.List(ctx)
	if err != nil {
		return h.storeErrorResponse(err), nil
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toResponse(rec))
	}
	return jsonResponse(http.StatusOK, out), nil
}

func (h *Handler) get(ctx context.Context, name string) (events.APIGatewayProxyResponse, error) {
	rec, err := h.store.Find(ctx, name)
	if err != nil {
		return h.storeErrorResponse(err), nil
	}
	return jsonResponse(http.StatusOK, toResponse(rec)), nil
}

func (h *Handler) update(ctx context.Context, name, body string) (events.APIGatewayProxyResponse, error) {
	var req recordRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errorResponse(http.StatusBadRequest, err), nil
	}

	rec, err := h.store.Update(ctx, name, req.Age, req.Scores)
	if err != nil {
		return h.storeErrorResponse(err), nil
	}
	return jsonResponse(http.StatusOK, toResponse(rec)), nil
}

func (h *Handler) delete(ctx context.Context, name string) (events.APIGatewayProxyResponse, error) {
	if err := h.store.Delete(ctx, name); err != nil {
		return h.storeErrorResponse(err), nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
}

// storeErrorResponse maps store errors to API Gateway responses.
func (h *Handler) storeErrorResponse(err error) events.APIGatewayProxyResponse {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errorResponse(http.StatusNotFound, err)
	case store.IsValidation(err):
		return errorResponse(http.StatusBadRequest, err)
	case errors.Is(err, store.ErrConcurrentModification):
		return errorResponse(http.StatusConflict, err)
	default:
		h.logger.Error("store operation failed", "error", err)
		return errorResponse(http.StatusInternalServerError, err)
	}
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func errorResponse(status int, err error) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func toResponse(rec *store.Record) recordResponse {
	return recordResponse{
		ID:      rec.ID,
		Name:    rec.Name,
		Age:     rec.Age,
		Scores:  rec.Scores,
		Average: rec.Average(),
	}
}
