package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/pkg/crypto"
	"bizcircle/portal/pkg/validator"
)

func TestGenerateInvitationAlwaysMints(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	ctx := context.Background()

	first, err := env.invitations.Generate(ctx, intention.ID, testAdminKey)
	require.NoError(t, err)
	second, err := env.invitations.Generate(ctx, intention.ID, testAdminKey)
	require.NoError(t, err)
	require.NotEqual(t, first.Invitation.Token, second.Invitation.Token)
	require.Len(t, env.mail.messages(), 2)

	_, err = env.invitations.Generate(ctx, intention.ID, "nope")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.invitations.Generate(ctx, uuid.New(), testAdminKey)
	require.ErrorIs(t, err, ErrIntentionNotFound)
}

func TestValidateInvitation(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	issued := env.approve(t, intention)
	ctx := context.Background()

	_, err := env.invitations.Validate(ctx, "  ", "")
	require.ErrorIs(t, err, ErrInvitationTokenMissing)

	res, err := env.invitations.Validate(ctx, "unknown-token", "")
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Equal(t, ReasonNotFound, res.Reason)

	res, err = env.invitations.Validate(ctx, issued.Invitation.Token, uuid.NewString())
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Equal(t, ReasonMismatch, res.Reason)

	res, err = env.invitations.Validate(ctx, issued.Invitation.Token, intention.ID.String())
	require.NoError(t, err)
	require.True(t, res.Valid)
	require.Equal(t, issued.Invitation.ID, res.Invitation.ID)
	require.Equal(t, "Maria Souza", res.Intention.Name)
	require.Equal(t, "maria@example.com", res.Intention.Email)
}

func TestValidateInvitationIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	issued := env.approve(t, intention)
	ctx := context.Background()

	first, err := env.invitations.Validate(ctx, issued.Invitation.Token, "")
	require.NoError(t, err)
	second, err := env.invitations.Validate(ctx, issued.Invitation.Token, "")
	require.NoError(t, err)
	require.Equal(t, first, second)

	stored, err := env.repos.Invitations.GetByToken(ctx, issued.Invitation.Token)
	require.NoError(t, err)
	require.False(t, stored.Used)
	require.Nil(t, stored.UsedAt)
}

func TestConsumeInvitationCreatesMemberOnce(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	issued := env.approve(t, intention)
	ctx := context.Background()

	in := RegisterInput{
		Token:       issued.Invitation.Token,
		IntentionID: intention.ID.String(),
		Name:        "Maria Souza",
		Email:       "Maria@Example.com",
		Password:    "senha123",
		Title:       strPtr("Diretora"),
		Phone:       strPtr("(11) 99999-0000"),
	}
	member, err := env.invitations.Consume(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", member.Email)
	require.True(t, crypto.CheckPassword("senha123", member.PasswordHash))

	stored, err := env.repos.Invitations.GetByToken(ctx, issued.Invitation.Token)
	require.NoError(t, err)
	require.True(t, stored.Used)
	require.NotNil(t, stored.UsedAt)

	in.Email = "maria2@example.com"
	_, err = env.invitations.Consume(ctx, in)
	require.ErrorIs(t, err, ErrInvitationUsed)

	res, err := env.invitations.Validate(ctx, issued.Invitation.Token, "")
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Equal(t, ReasonUsed, res.Reason)

	members, err := env.members.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
}

func TestConsumeInvitationRejections(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	issued := env.approve(t, intention)
	existing := env.register(t, "Joao Lima", "joao@example.com")
	ctx := context.Background()

	base := RegisterInput{
		Token:    issued.Invitation.Token,
		Name:     "Maria Souza",
		Email:    "maria@example.com",
		Password: "senha123",
	}

	in := base
	in.Password = "123"
	_, err := env.invitations.Consume(ctx, in)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Contains(t, verrs.Fields(), "password")

	in = base
	in.Token = "does-not-exist"
	_, err = env.invitations.Consume(ctx, in)
	require.ErrorIs(t, err, ErrInvitationNotFound)

	in = base
	in.IntentionID = uuid.NewString()
	_, err = env.invitations.Consume(ctx, in)
	require.ErrorIs(t, err, ErrInvitationMismatch)

	in = base
	in.Email = existing.Email
	_, err = env.invitations.Consume(ctx, in)
	require.ErrorIs(t, err, ErrMemberEmailTaken)

	// None of the failures above may burn the token.
	stored, err := env.repos.Invitations.GetByToken(ctx, issued.Invitation.Token)
	require.NoError(t, err)
	require.False(t, stored.Used)

	_, err = env.invitations.Consume(ctx, base)
	require.NoError(t, err)
}

func TestConsumeInvitationConcurrently(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	issued := env.approve(t, intention)

	const attempts = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		members []*model.Member
		errs    []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			member, err := env.invitations.Consume(context.Background(), RegisterInput{
				Token:    issued.Invitation.Token,
				Name:     "Maria Souza",
				Email:    uuid.NewString() + "@example.com",
				Password: "senha123",
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			members = append(members, member)
		}()
	}
	wg.Wait()

	require.Len(t, members, 1)
	require.Len(t, errs, attempts-1)
	for _, err := range errs {
		require.ErrorIs(t, err, ErrInvitationUsed)
	}

	list, err := env.members.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestConsumeMalformedIntentionIDIsMismatch(t *testing.T) {
	env := newTestEnv(t)
	intention := env.submit(t, "Maria Souza", "maria@example.com")
	issued := env.approve(t, intention)
	ctx := context.Background()

	res, err := env.invitations.Validate(ctx, issued.Invitation.Token, "not-a-uuid")
	require.NoError(t, err)
	require.Equal(t, ReasonMismatch, res.Reason)

	_, err = env.invitations.Consume(ctx, RegisterInput{
		Token:       issued.Invitation.Token,
		IntentionID: "not-a-uuid",
		Name:        "Maria Souza",
		Email:       "maria@example.com",
		Password:    "senha123",
	})
	require.ErrorIs(t, err, ErrInvitationMismatch)
}
