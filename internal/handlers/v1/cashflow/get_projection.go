package cashflow

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/nandervang/consultant-time-track-sub001/internal/logging"
	"github.com/nandervang/consultant-time-track-sub001/internal/projection"
)

// GetProjectionInput is the Huma input for fetching a cash-flow projection.
type GetProjectionInput struct {
	UserID string `query:"userID" required:"true" format:"uuid" doc:"User scope UUID"`
	From   string `query:"from" required:"true" format:"date" doc:"Window start date (YYYY-MM-DD)"`
	To     string `query:"to" required:"true" format:"date" doc:"Window end date (YYYY-MM-DD)"`
}

// GetProjectionResponseBody is the response body for a cash-flow projection.
type GetProjectionResponseBody struct {
	Months []MonthlyBucket `json:"months" doc:"Ordered monthly buckets with chained running balance"`
	Cached bool            `json:"cached" doc:"True when served from the projection cache"`
}

// GetProjectionOutput is the Huma output for fetching a cash-flow projection.
type GetProjectionOutput struct {
	Body GetProjectionResponseBody
}

// projectionReader is the interface for computing projections.
type projectionReader interface {
	GetProjection(ctx context.Context, userID uuid.UUID, windowStart, windowEnd time.Time) ([]projection.MonthlyBucket, bool, error)
}

// GetProjectionHandler handles GET /v1/cashflow/projection.
type GetProjectionHandler struct {
	ProjectionService projectionReader
}

// NewGetProjectionHandler creates a new GetProjectionHandler.
func NewGetProjectionHandler(svc projectionReader) *GetProjectionHandler {
	return &GetProjectionHandler{ProjectionService: svc}
}

// Register registers the projection endpoint with the Huma API.
func (h *GetProjectionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cashflow-projection",
		Method:      http.MethodGet,
		Path:        "/v1/cashflow/projection",
		Summary:     "Get cash-flow projection",
		Description: "Returns the monthly cash position for the window, merging confirmed entries with recurring, invoice, and tax forecasts.",
		Tags:        []string{"Cashflow"},
	}, h.handle)
}

// parseGetProjectionInput parses and validates the API input.
func parseGetProjectionInput(input *GetProjectionInput) (userID uuid.UUID, from, to time.Time, err error) {
	userID, parseErr := uuid.FromString(input.UserID)
	if parseErr != nil {
		return uuid.Nil, time.Time{}, time.Time{}, huma.NewError(http.StatusBadRequest, "invalid userID", parseErr)
	}

	from, parseErr = time.Parse("2006-01-02", input.From)
	if parseErr != nil {
		return uuid.Nil, time.Time{}, time.Time{}, huma.NewError(http.StatusBadRequest, "invalid from date", parseErr)
	}

	to, parseErr = time.Parse("2006-01-02", input.To)
	if parseErr != nil {
		return uuid.Nil, time.Time{}, time.Time{}, huma.NewError(http.StatusBadRequest, "invalid to date", parseErr)
	}

	if to.Before(from) {
		return uuid.Nil, time.Time{}, time.Time{}, huma.NewError(http.StatusBadRequest, "to precedes from")
	}

	return userID, from, to, nil
}

func (h *GetProjectionHandler) handle(ctx context.Context, input *GetProjectionInput) (*GetProjectionOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, from, to, err := parseGetProjectionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("projectionMs")
	}
	buckets, cached, err := h.ProjectionService.GetProjection(ctx, userID, from, to)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute projection", err)
	}

	if logData != nil {
		logData.AddData("monthCount", len(buckets))
		logData.AddData("cacheHit", cached)
	}

	resp := GetProjectionResponseBody{
		Months: make([]MonthlyBucket, len(buckets)),
		Cached: cached,
	}
	for i, bucket := range buckets {
		resp.Months[i] = MonthlyBucket{
			Month:          bucket.Month,
			OpeningBalance: bucket.OpeningBalance.String(),
			TotalIncome:    bucket.TotalIncome.String(),
			TotalExpenses:  bucket.TotalExpenses.String(),
			NetFlow:        bucket.NetFlow.String(),
			ClosingBalance: bucket.ClosingBalance.String(),
			IsProjection:   bucket.IsProjection,
		}
	}

	return &GetProjectionOutput{Body: resp}, nil
}
