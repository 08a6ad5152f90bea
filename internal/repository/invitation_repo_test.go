package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/internal/testutil"
)

func TestInvitationMarkUsedIsConditional(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repos := repository.NewGormRepositories(db)
	ctx := context.Background()

	intention := &model.Intention{Name: "Maria", Email: "maria@example.com", Reason: "Quero participar"}
	require.NoError(t, repos.Intentions.Create(ctx, intention))
	require.Equal(t, model.IntentionStatusPending, intention.Status)

	invitation := &model.Invitation{Token: "token-0123456789", IntentionID: intention.ID}
	require.NoError(t, repos.Invitations.Create(ctx, invitation))

	unused, err := repos.Invitations.GetUnusedByIntention(ctx, intention.ID)
	require.NoError(t, err)
	require.Equal(t, invitation.ID, unused.ID)

	claimed, err := repos.Invitations.MarkUsed(ctx, invitation.Token, time.Now())
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = repos.Invitations.MarkUsed(ctx, invitation.Token, time.Now())
	require.NoError(t, err)
	require.False(t, claimed)

	loaded, err := repos.Invitations.GetByToken(ctx, invitation.Token)
	require.NoError(t, err)
	require.True(t, loaded.Used)
	require.NotNil(t, loaded.Intention)
	require.Equal(t, "maria@example.com", loaded.Intention.Email)

	_, err = repos.Invitations.GetUnusedByIntention(ctx, intention.ID)
	require.Error(t, err)
}

func TestDuplicateEmailIsTranslated(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repos := repository.NewGormRepositories(db)
	ctx := context.Background()

	require.NoError(t, repos.Members.Create(ctx, &model.Member{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}))
	err := repos.Members.Create(ctx, &model.Member{Name: "Ana 2", Email: "ana@example.com", PasswordHash: "y"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
