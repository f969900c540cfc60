package entry

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/nandervang/consultant-time-track-sub001/internal/operator"
	"github.com/nandervang/consultant-time-track-sub001/internal/operator/actions"
	"github.com/nandervang/consultant-time-track-sub001/internal/projection"
)

// CreateEntryBody is the request body for creating a manual ledger entry.
type CreateEntryBody struct {
	UserID    string `json:"userID" required:"true" format:"uuid" doc:"User scope UUID"`
	EntryDate string `json:"entryDate" required:"true" format:"date" doc:"Entry date (YYYY-MM-DD)"`
	Amount    string `json:"amount" required:"true" doc:"Decimal amount; expenses may be signed either way"`
	EntryType string `json:"entryType" required:"true" enum:"income,expense" doc:"Entry classification"`
	Category  string `json:"category" minLength:"1" required:"true" doc:"Display category"`
}

// CreateEntryInput is the Huma input for creating a ledger entry.
type CreateEntryInput struct {
	Body CreateEntryBody
}

// CreateEntryOutput is the Huma output for creating a ledger entry.
type CreateEntryOutput struct {
	Status int
}

// CreateEntryHandler handles POST /v1/entry.
type CreateEntryHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreateEntryHandler creates a new CreateEntryHandler.
func NewCreateEntryHandler(op *operator.OperatorDelegator) *CreateEntryHandler {
	return &CreateEntryHandler{Operator: op}
}

// Register registers the create entry endpoint with the Huma API.
func (h *CreateEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-entry",
		Method:      http.MethodPost,
		Path:        "/v1/entry",
		Summary:     "Create ledger entry",
		Description: "Creates a confirmed manual ledger entry and invalidates the user's cached projections.",
		Tags:        []string{"Entries"},
	}, h.handle)
}

// parseCreateEntryInput parses and validates the API input.
func parseCreateEntryInput(input *CreateEntryInput) (*actions.CreateEntry, error) {
	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	entryDate, err := time.Parse("2006-01-02", input.Body.EntryDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid entryDate", err)
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	entryType := projection.EntryType(input.Body.EntryType)
	if entryType != projection.EntryTypeIncome && entryType != projection.EntryTypeExpense {
		return nil, huma.NewError(http.StatusBadRequest, "invalid entryType")
	}

	return &actions.CreateEntry{
		UserID:    userID,
		EntryDate: entryDate,
		Amount:    amount,
		EntryType: entryType,
		Category:  input.Body.Category,
	}, nil
}

func (h *CreateEntryHandler) handle(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error) {
	action, err := parseCreateEntryInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create entry", err)
	}

	return &CreateEntryOutput{Status: http.StatusCreated}, nil
}
