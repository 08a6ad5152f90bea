package service

// AdminGate decides whether a caller-supplied secret grants administrative access.
type AdminGate interface {
	Verify(secret string) bool
}

type adminGate struct {
	secret string
}

// NewAdminGate returns a gate comparing against secret. An empty secret denies everything.
func NewAdminGate(secret string) AdminGate {
	return &adminGate{secret: secret}
}

func (g *adminGate) Verify(secret string) bool {
	if g.secret == "" {
		return false
	}
	return secret == g.secret
}

func requireAdmin(gate AdminGate, secret string) error {
	if !gate.Verify(secret) {
		return ErrUnauthorized
	}
	return nil
}

var _ AdminGate = (*adminGate)(nil)
