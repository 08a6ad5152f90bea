package service

import "errors"

// Authorization failures. Messages never reveal which check failed.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrReferralNotParty   = errors.New("only the referral's sender or recipient may do this")
)

// Conflicts on unique keys.
var (
	ErrIntentionEmailTaken = errors.New("this email already has a registered intention")
	ErrMemberEmailTaken    = errors.New("this email is already registered as a member")
)

// Lookups that found nothing.
var (
	ErrIntentionNotFound = errors.New("intention not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrReferralNotFound  = errors.New("referral not found")
)

// Invitation validation outcomes.
var (
	ErrInvitationTokenMissing = errors.New("invitation token is required")
	ErrInvitationNotFound     = errors.New("invitation not found")
	ErrInvitationUsed         = errors.New("invitation already used")
	ErrInvitationMismatch     = errors.New("invitation does not belong to this intention")
)

// Input rule violations that are not plain struct-tag checks.
var (
	ErrInvalidIntentionStatus = errors.New("status must be one of: pendente, aprovado, recusado")
	ErrInvalidReferralStatus  = errors.New("status must be one of: nova, em_contato, fechada, recusada")
	ErrSelfReferral           = errors.New("a member cannot refer to themselves")
	ErrReferralMemberUnknown  = errors.New("referral sender or recipient is not a member")
)
