package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/pkg/validator"
)

func referralInput(from, to uuid.UUID) CreateReferralInput {
	return CreateReferralInput{
		SenderID:    from.String(),
		RecipientID: to.String(),
		Contact:     "Empresa X",
		Description: "Contato interessado em consultoria",
	}
}

func TestCreateReferral(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")

	in := referralInput(a.ID, b.ID)
	in.Contact = "  Empresa X "
	referral, err := env.referrals.Create(context.Background(), a.ID, in)
	require.NoError(t, err)
	require.Equal(t, model.ReferralStatusNew, referral.Status)
	require.Equal(t, "Empresa X", referral.Contact)
	require.NotNil(t, referral.Sender)
	require.NotNil(t, referral.Recipient)
	require.Equal(t, "Bruno Reis", referral.Recipient.Name)
}

func TestCreateReferralSenderIsSessionMember(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")
	c := env.register(t, "Carla Dias", "carla@example.com")
	ctx := context.Background()

	in := referralInput(a.ID, b.ID)
	in.SenderID = ""
	referral, err := env.referrals.Create(ctx, a.ID, in)
	require.NoError(t, err)
	require.Equal(t, a.ID, referral.SenderID)

	_, err = env.referrals.Create(ctx, a.ID, referralInput(c.ID, b.ID))
	require.ErrorIs(t, err, ErrReferralNotParty)

	list, err := env.referrals.ListFor(ctx, c.ID.String())
	require.NoError(t, err)
	require.Empty(t, list.Sent)
}

func TestCreateReferralRejectsSelfReferral(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	ctx := context.Background()

	_, err := env.referrals.Create(ctx, a.ID, referralInput(a.ID, a.ID))
	require.ErrorIs(t, err, ErrSelfReferral)

	in := referralInput(a.ID, a.ID)
	in.SenderID = " " + a.ID.String()
	in.RecipientID = strings.ToUpper(a.ID.String()) + " "
	_, err = env.referrals.Create(ctx, a.ID, in)
	require.ErrorIs(t, err, ErrSelfReferral)

	list, err := env.referrals.ListFor(ctx, a.ID.String())
	require.NoError(t, err)
	require.Empty(t, list.Sent)
}

func TestCreateReferralRejectsUnknownOrInvalid(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	ctx := context.Background()

	_, err := env.referrals.Create(ctx, a.ID, referralInput(a.ID, uuid.New()))
	require.ErrorIs(t, err, ErrReferralMemberUnknown)

	_, err = env.referrals.Create(ctx, a.ID, CreateReferralInput{
		SenderID:    a.ID.String(),
		RecipientID: "not-a-uuid",
		Contact:     "X",
		Description: "curta",
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.Fields()
	require.Contains(t, fields, "membro_indicado_id")
	require.Contains(t, fields, "empresa_contato")
	require.Contains(t, fields, "descricao")
}

func TestListReferralsSplitsSentAndReceived(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")
	ctx := context.Background()

	_, err := env.referrals.Create(ctx, a.ID, referralInput(a.ID, b.ID))
	require.NoError(t, err)

	listA, err := env.referrals.ListFor(ctx, a.ID.String())
	require.NoError(t, err)
	require.Len(t, listA.Sent, 1)
	require.NotNil(t, listA.Received)
	require.Empty(t, listA.Received)
	require.Equal(t, "bruno@example.com", listA.Sent[0].Recipient.Email)

	listB, err := env.referrals.ListFor(ctx, b.ID.String())
	require.NoError(t, err)
	require.Empty(t, listB.Sent)
	require.Len(t, listB.Received, 1)
	require.Equal(t, "Ana Costa", listB.Received[0].Sender.Name)

	_, err = env.referrals.ListFor(ctx, "bogus")
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
}

func TestListReferralsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := func(from, to uuid.UUID, contact string, at time.Time) {
		require.NoError(t, env.repos.Referrals.Create(ctx, &model.Referral{
			SenderID:    from,
			RecipientID: to,
			Contact:     contact,
			Description: "Contato interessado em consultoria",
			CreatedAt:   at,
		}))
	}
	// Inserted out of order so the result cannot follow insertion order.
	seed(a.ID, b.ID, "Sent middle", base.Add(time.Hour))
	seed(a.ID, b.ID, "Sent oldest", base)
	seed(a.ID, b.ID, "Sent newest", base.Add(2*time.Hour))
	seed(b.ID, a.ID, "Received oldest", base)
	seed(b.ID, a.ID, "Received newest", base.Add(3*time.Hour))

	list, err := env.referrals.ListFor(ctx, a.ID.String())
	require.NoError(t, err)

	contacts := func(refs []model.Referral) []string {
		out := make([]string, len(refs))
		for i, r := range refs {
			out[i] = r.Contact
		}
		return out
	}
	require.Equal(t, []string{"Sent newest", "Sent middle", "Sent oldest"}, contacts(list.Sent))
	require.Equal(t, []string{"Received newest", "Received oldest"}, contacts(list.Received))
}

func TestUpdateReferralStatus(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")
	ctx := context.Background()

	referral, err := env.referrals.Create(ctx, a.ID, referralInput(a.ID, b.ID))
	require.NoError(t, err)

	updated, err := env.referrals.UpdateStatus(ctx, b.ID, referral.ID, model.ReferralStatusClosed)
	require.NoError(t, err)
	require.Equal(t, model.ReferralStatusClosed, updated.Status)

	// Any transition is allowed, including back to the initial state.
	updated, err = env.referrals.UpdateStatus(ctx, a.ID, referral.ID, model.ReferralStatusNew)
	require.NoError(t, err)
	require.Equal(t, model.ReferralStatusNew, updated.Status)

	_, err = env.referrals.UpdateStatus(ctx, a.ID, referral.ID, "perdida")
	require.ErrorIs(t, err, ErrInvalidReferralStatus)

	_, err = env.referrals.UpdateStatus(ctx, a.ID, uuid.New(), model.ReferralStatusClosed)
	require.ErrorIs(t, err, ErrReferralNotFound)
}

func TestUpdateReferralStatusRequiresParty(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Ana Costa", "ana@example.com")
	b := env.register(t, "Bruno Reis", "bruno@example.com")
	c := env.register(t, "Carla Dias", "carla@example.com")
	ctx := context.Background()

	referral, err := env.referrals.Create(ctx, a.ID, referralInput(a.ID, b.ID))
	require.NoError(t, err)

	_, err = env.referrals.UpdateStatus(ctx, c.ID, referral.ID, model.ReferralStatusDeclined)
	require.ErrorIs(t, err, ErrReferralNotParty)

	stored, err := env.repos.Referrals.GetByID(ctx, referral.ID)
	require.NoError(t, err)
	require.Equal(t, model.ReferralStatusNew, stored.Status)
}
