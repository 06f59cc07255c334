package coordinator

import (
	"context"
	"sync"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

type fakeRefresher struct {
	mu     sync.Mutex
	events []string
	errs   map[domain.Kind]error
	// inFlight counts overlapping refreshes to catch ordering violations.
	inFlight    int
	maxInFlight int
}

func (f *fakeRefresher) Refresh(_ context.Context, kind domain.Kind) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.events = append(f.events, "start:"+string(kind))
	err := f.errs[kind]
	f.mu.Unlock()

	f.mu.Lock()
	f.inFlight--
	f.events = append(f.events, "end:"+string(kind))
	f.mu.Unlock()
	return err
}

func (f *fakeRefresher) started() []domain.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kinds []domain.Kind
	for _, event := range f.events {
		if len(event) > 6 && event[:6] == "start:" {
			kinds = append(kinds, domain.Kind(event[6:]))
		}
	}
	return kinds
}

type fakeSessions struct {
	session domain.Session
	missing bool
}

func (f fakeSessions) RequireSession(context.Context) (domain.Session, error) {
	if f.missing {
		return domain.Session{}, apperrors.Unauthenticated("no active session")
	}
	return f.session, nil
}
