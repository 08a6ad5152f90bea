package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesSessionToken(t *testing.T) {
	env := newTestEnv(t)
	member := env.register(t, "Maria Souza", "maria@example.com")
	ctx := context.Background()

	res, err := env.members.Login(ctx, LoginInput{Email: " MARIA@example.com", Password: "senha123"})
	require.NoError(t, err)
	require.Equal(t, member.ID, res.Member.ID)
	require.NotEmpty(t, res.Token)
	require.False(t, res.ExpiresAt.IsZero())

	claims, err := env.members.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	memberID, err := claims.MemberID()
	require.NoError(t, err)
	require.Equal(t, member.ID, memberID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Maria Souza", "maria@example.com")
	ctx := context.Background()

	_, err := env.members.Login(ctx, LoginInput{Email: "maria@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.members.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "senha123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Maria Souza", "maria@example.com")
	ctx := context.Background()

	res, err := env.members.Login(ctx, LoginInput{Email: "maria@example.com", Password: "senha123"})
	require.NoError(t, err)
	claims, err := env.members.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, env.members.Logout(ctx, claims))

	_, err = env.members.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.members.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestListMembersOrderedByName(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Zelia Prado", "zelia@example.com")
	env.register(t, "Ana Costa", "ana@example.com")

	members, err := env.members.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "Ana Costa", members[0].Name)
	require.Equal(t, "Zelia Prado", members[1].Name)
}

func TestDeleteMemberCascadesReferrals(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")
	c := env.register(t, "Carla Dias", "carla@example.com")
	ctx := context.Background()

	refer := func(from, to uuid.UUID) {
		_, err := env.referrals.Create(ctx, from, CreateReferralInput{
			SenderID:    from.String(),
			RecipientID: to.String(),
			Contact:     "Empresa X",
			Description: "Contato interessado em consultoria",
		})
		require.NoError(t, err)
	}
	refer(a.ID, b.ID)
	refer(c.ID, a.ID)
	refer(b.ID, c.ID)

	require.ErrorIs(t, env.members.Delete(ctx, a.ID, "wrong"), ErrUnauthorized)
	require.NoError(t, env.members.Delete(ctx, a.ID, testAdminKey))

	_, err := env.repos.Members.GetByID(ctx, a.ID)
	require.Error(t, err)

	listB, err := env.referrals.ListFor(ctx, b.ID.String())
	require.NoError(t, err)
	require.Empty(t, listB.Received)
	require.Len(t, listB.Sent, 1)
	require.Equal(t, c.ID, listB.Sent[0].RecipientID)

	listC, err := env.referrals.ListFor(ctx, c.ID.String())
	require.NoError(t, err)
	require.Empty(t, listC.Sent)
	require.Len(t, listC.Received, 1)

	require.ErrorIs(t, env.members.Delete(ctx, a.ID, testAdminKey), ErrMemberNotFound)
}

func TestDeletedMemberLosesSession(t *testing.T) {
	env := newTestEnv(t)
	member := env.register(t, "Maria Souza", "maria@example.com")
	ctx := context.Background()

	res, err := env.members.Login(ctx, LoginInput{Email: "maria@example.com", Password: "senha123"})
	require.NoError(t, err)
	_, err = env.members.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, env.members.Delete(ctx, member.ID, testAdminKey))

	_, err = env.members.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
}
