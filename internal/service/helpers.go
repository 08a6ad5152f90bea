package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/pkg/crypto"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trimOptional trims an optional text field and folds blank values to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// mintInvitation creates a fresh, unused invitation for the intention.
func mintInvitation(ctx context.Context, repo repository.InvitationRepository, intentionID uuid.UUID) (*model.Invitation, error) {
	token, err := crypto.GenerateInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("generate invitation token: %w", err)
	}
	invitation := &model.Invitation{
		Token:       token,
		IntentionID: intentionID,
	}
	if err := repo.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return invitation, nil
}
