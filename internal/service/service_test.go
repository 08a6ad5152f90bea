package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/internal/testutil"
	jwtpkg "bizcircle/portal/pkg/jwt"
)

const testAdminKey = "admin-secret"

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailSender) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return f.err
}

func (f *fakeMailSender) messages() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type testEnv struct {
	repos       repository.Repositories
	mail        *fakeMailSender
	intentions  IntentionService
	invitations InvitationService
	members     MemberService
	referrals   ReferralService
	sessions    repository.SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	repos := repository.NewGormRepositories(db)
	tx := repository.NewGormTransactor(db)
	gate := NewAdminGate(testAdminKey)
	logger := zap.NewNop()
	mail := &fakeMailSender{}
	mailer := NewInvitationMailer("https://portal.example/", mail, logger)
	sessions := repository.NewMemorySessionStore()
	jwtManager := jwtpkg.NewManager("test-signing-key-0123456789abcdef", "portal-test", time.Hour)

	return &testEnv{
		repos:       repos,
		mail:        mail,
		intentions:  NewIntentionService(repos, tx, gate, mailer, logger),
		invitations: NewInvitationService(repos, tx, gate, mailer, logger),
		members:     NewMemberService(repos, tx, gate, jwtManager, sessions, logger),
		referrals:   NewReferralService(repos, logger),
		sessions:    sessions,
	}
}

func strPtr(s string) *string { return &s }

func (e *testEnv) submit(t *testing.T, name, email string) *model.Intention {
	t.Helper()
	intention, err := e.intentions.Submit(context.Background(), SubmitIntentionInput{
		Name:    name,
		Email:   email,
		Company: strPtr("Acme Ltda"),
		Reason:  "Quero ampliar minha rede de contatos",
	})
	require.NoError(t, err)
	return intention
}

func (e *testEnv) approve(t *testing.T, intention *model.Intention) *IssuedInvitation {
	t.Helper()
	res, err := e.intentions.Transition(context.Background(), intention.ID, model.IntentionStatusApproved, testAdminKey)
	require.NoError(t, err)
	require.NotNil(t, res.Invitation)
	return res.Invitation
}

// register walks an applicant through submit, approve and consume.
func (e *testEnv) register(t *testing.T, name, email string) *model.Member {
	t.Helper()
	intention := e.submit(t, name, email)
	issued := e.approve(t, intention)
	member, err := e.invitations.Consume(context.Background(), RegisterInput{
		Token:       issued.Invitation.Token,
		IntentionID: intention.ID.String(),
		Name:        name,
		Email:       email,
		Password:    "senha123",
	})
	require.NoError(t, err)
	return member
}
