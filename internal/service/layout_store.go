package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
)

// LayoutKey is the state key holding the node position overrides.
const LayoutKey = "roadmap-node-positions"

// ErrInvalidPosition is returned for coordinates that cannot be stored.
var ErrInvalidPosition = errors.New("invalid position")

// LayoutStore persists manual node positions. Positions are global: they do
// not depend on the project or on statuses.
type LayoutStore struct {
	repo     repository.StateRepo
	observer UseCaseObserver
}

// NewLayoutStore creates a LayoutStore backed by repo.
func NewLayoutStore(repo repository.StateRepo, observers ...UseCaseObserver) *LayoutStore {
	return &LayoutStore{repo: repo, observer: useCaseObserverOrNoop(observers)}
}

// Load returns the stored overrides. It never fails: a missing key, a storage
// error, or an unparseable document all yield an empty map, and entries
// without numeric x and y are dropped one by one.
func (s *LayoutStore) Load(ctx context.Context) domain.LayoutOverrides {
	startedAt := time.Now()
	var err error
	fields := map[string]any{"key": LayoutKey}
	defer observe(ctx, s.observer, "load-layout", startedAt, &err, fields)

	raw, getErr := s.repo.Get(ctx, LayoutKey)
	if getErr != nil {
		if !errors.Is(getErr, repository.ErrNotFound) {
			err = getErr
		}
		return domain.LayoutOverrides{}
	}

	out, dropped, parseErr := decodeOverrides(raw)
	if parseErr != nil {
		err = parseErr
		return domain.LayoutOverrides{}
	}
	fields["entries"] = len(out)
	if dropped > 0 {
		fields["dropped"] = dropped
	}
	return out
}

// Save records one node position with a read-modify-write of the stored
// document. Malformed stored content is replaced.
func (s *LayoutStore) Save(ctx context.Context, nodeID string, p domain.Point) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "save-layout", startedAt, &err, map[string]any{"node": nodeID})

	if nodeID == "" || !finite(p.X) || !finite(p.Y) {
		return fmt.Errorf("position of %q (%v, %v): %w", nodeID, p.X, p.Y, ErrInvalidPosition)
	}
	return s.repo.Update(ctx, LayoutKey, func(current []byte, found bool) ([]byte, error) {
		overrides := domain.LayoutOverrides{}
		if found {
			if prev, _, err := decodeOverrides(current); err == nil {
				overrides = prev
			}
		}
		overrides[nodeID] = p
		data, err := json.Marshal(overrides)
		if err != nil {
			return nil, fmt.Errorf("encoding layout: %w", err)
		}
		return data, nil
	})
}

// Reset removes every stored position.
func (s *LayoutStore) Reset(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "reset-layout", startedAt, &err, nil)

	if err = s.repo.Delete(ctx, LayoutKey); err != nil {
		return fmt.Errorf("resetting layout: %w", err)
	}
	return nil
}

// Position returns the override for a node, or the centre of its template box.
func Position(overrides domain.LayoutOverrides, node domain.Node) domain.Point {
	if p, ok := overrides[node.ID]; ok {
		return p
	}
	return node.Box.Center()
}

type storedPoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func decodeOverrides(raw []byte) (domain.LayoutOverrides, int, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 0, fmt.Errorf("parsing layout: %w", err)
	}
	out := make(domain.LayoutOverrides, len(entries))
	dropped := 0
	for id, msg := range entries {
		var sp storedPoint
		if err := json.Unmarshal(msg, &sp); err != nil || sp.X == nil || sp.Y == nil {
			dropped++
			continue
		}
		out[id] = domain.Point{X: *sp.X, Y: *sp.Y}
	}
	return out, dropped, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
