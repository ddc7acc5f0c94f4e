package state

import "github.com/atomicstack/tmux-stream-catalog/internal/menu"

type PlayerStore interface {
	Status() menu.PlayerStatus
	SetStatus(menu.PlayerStatus)
	Observed() bool
}

type playerStore struct {
	status   menu.PlayerStatus
	observed bool
}

func NewPlayerStore() PlayerStore {
	return &playerStore{}
}

func (p *playerStore) Status() menu.PlayerStatus {
	return p.status
}

func (p *playerStore) SetStatus(status menu.PlayerStatus) {
	p.status = status
	p.observed = true
}

// Observed reports whether any status has been recorded yet.
func (p *playerStore) Observed() bool {
	return p.observed
}
