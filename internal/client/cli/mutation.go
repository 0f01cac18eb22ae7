package cli

import "fmt"

type MutationState int

const (
	MutationIdle MutationState = iota
	MutationPending
	MutationSuccess
	MutationError
)

func (s MutationState) String() string {
	switch s {
	case MutationPending:
		return "pending"
	case MutationSuccess:
		return "success"
	case MutationError:
		return "error"
	default:
		return "idle"
	}
}

// Mutation tracks the last user-triggered write. It moves from idle to
// pending and ends in success or error; a new Run starts over. Nothing is
// retried or cancelled.
type Mutation struct {
	Name  string
	State MutationState
	Err   error
}

func (m *Mutation) Run(name string, fn func() error) error {
	m.Name, m.State, m.Err = name, MutationPending, nil

	if err := fn(); err != nil {
		m.State, m.Err = MutationError, err
		return err
	}
	m.State = MutationSuccess
	return nil
}

// Label renders "vote: success", or "" while idle.
func (m *Mutation) Label() string {
	if m.State == MutationIdle {
		return ""
	}
	return fmt.Sprintf("%s: %s", m.Name, m.State)
}
