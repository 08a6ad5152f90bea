package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"bizcircle/portal/internal/model"
)

const invitationSubject = "Your invitation to the network"

// InvitationMailer builds registration links and, when a MailSender is configured,
// delivers them to applicants. Delivery problems are logged and never fail the caller.
type InvitationMailer struct {
	baseURL string
	sender  MailSender
	logger  *zap.Logger
}

func NewInvitationMailer(baseURL string, sender MailSender, logger *zap.Logger) *InvitationMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvitationMailer{
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  sender,
		logger:  logger,
	}
}

// RegistrationURL returns the link an applicant follows to complete registration.
func (m *InvitationMailer) RegistrationURL(invitation *model.Invitation) string {
	q := url.Values{}
	q.Set("token", invitation.Token)
	q.Set("id", invitation.IntentionID.String())
	return fmt.Sprintf("%s/cadastro-final?%s", m.baseURL, q.Encode())
}

// InvitationIssued notifies the applicant of a freshly minted invitation.
func (m *InvitationMailer) InvitationIssued(ctx context.Context, intention *model.Intention, invitation *model.Invitation) string {
	link := m.RegistrationURL(invitation)
	m.logger.Info("invitation issued",
		zap.String("intention_id", intention.ID.String()),
		zap.String("invitation_id", invitation.ID.String()),
	)
	if m.sender == nil {
		return link
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour request to join the network was approved. Complete your registration here:\n%s\n\nThis link can be used only once.\n",
		intention.Name, link,
	)
	if err := m.sender.Send(ctx, intention.Email, invitationSubject, body); err != nil {
		m.logger.Warn("invitation email not delivered",
			zap.String("intention_id", intention.ID.String()),
			zap.Error(err),
		)
	}
	return link
}
