package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/groom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/policy"
	"github.com/BruksfildServices01/groom-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/groom-scheduler/internal/models"
)

type QuoteInput struct {
	OrganizationID uuid.UUID
	// nil is treated as a new client
	ClientID *uuid.UUID
	Pets     []pricing.PetSelection
}

type QuoteOutput struct {
	Total            pricing.AppointmentTotal `json:"total"`
	DepositAmount    decimal.Decimal          `json:"deposit_amount"`
	ConfirmationMode models.ConfirmationMode  `json:"confirmation_mode"`
}

// Quote prices a selection without reserving anything.
type Quote struct {
	repo domain.Repository
}

func NewQuote(repo domain.Repository) *Quote {
	return &Quote{repo: repo}
}

func (uc *Quote) Execute(ctx context.Context, in QuoteInput) (*QuoteOutput, error) {
	p, err := uc.repo.GetBookingPolicies(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := policy.CheckPetCount(len(in.Pets), p); err != nil {
		return nil, err
	}

	total, err := priceSelection(ctx, uc.repo, in.OrganizationID, in.Pets)
	if err != nil {
		return nil, err
	}

	isNew := true
	if in.ClientID != nil {
		n, err := uc.repo.CountClientAppointments(ctx, in.OrganizationID, *in.ClientID)
		if err != nil {
			return nil, err
		}
		isNew = n == 0
	}

	return &QuoteOutput{
		Total:            total,
		DepositAmount:    policy.ComputeDeposit(total.Price, p),
		ConfirmationMode: policy.ResolveConfirmationMode(isNew, p),
	}, nil
}
