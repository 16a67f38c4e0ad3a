package store

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
)

// Resource is the remote collection a store mirrors
type Resource[T models.Entity] interface {
	List(ctx context.Context, req models.PageRequest) (*models.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity T) (*T, error)
	Update(ctx context.Context, entity T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Listener observes every state transition
type Listener[T models.Entity] func(prev, next State[T])

type change[T models.Entity] struct {
	prev, next State[T]
}

// Store holds the state of one entity type and runs its remote operations.
// Operations return immediately; the returned channel is closed once the
// settling action has been applied. Failures end up in State.Err.
type Store[T models.Entity] struct {
	name     string
	resource Resource[T]
	logger   *slog.Logger

	mu    sync.Mutex
	state State[T]

	notifyMu   sync.Mutex
	queue      []change[T]
	delivering bool
	listeners  map[int]Listener[T]
	nextID     int
}

// New creates a store for the entity type called name (used in logs)
func New[T models.Entity](name string, resource Resource[T], logger *slog.Logger) *Store[T] {
	return &Store[T]{
		name:      name,
		resource:  resource,
		logger:    logger.With("store", name),
		state:     Initial[T](0),
		listeners: make(map[int]Listener[T]),
	}
}

// Name returns the entity type name
func (s *Store[T]) Name() string {
	return s.name
}

// State returns the current state
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every subsequent transition and returns a
// function that removes it. Listeners run one at a time in dispatch order;
// they may call back into the store.
func (s *Store[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	s.notifyMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.notifyMu.Unlock()

	return func() {
		s.notifyMu.Lock()
		delete(s.listeners, id)
		s.notifyMu.Unlock()
	}
}

// Dispatch reduces a into the state and notifies listeners
func (s *Store[T]) Dispatch(a Action) State[T] {
	s.mu.Lock()
	next := s.applyLocked(a)
	s.mu.Unlock()

	s.deliver()
	return next
}

// Reset clears entities, entity and updateSuccess and bumps the generation
// so responses to earlier requests are dropped.
func (s *Store[T]) Reset() {
	s.Dispatch(Reset{})
}

// GetEntities fetches one page and replaces or appends it
func (s *Store[T]) GetEntities(ctx context.Context, req models.PageRequest, policy Accumulation) <-chan struct{} {
	stamp := s.begin(func(st Stamp) Action { return ListPending{st} })

	return s.run(func() Action {
		page, err := s.resource.List(ctx, req)
		if err != nil {
			s.logger.Warn("list failed", "page", req.Page, "size", req.Size, "error", err)
			return Rejected{Stamp: stamp, Op: OpList, Err: err}
		}
		s.logger.Debug("page loaded",
			"page", req.Page,
			"size", req.Size,
			"returned", len(page.Items),
			"policy", policy.String(),
			"generation", stamp.Generation,
		)
		return ListFulfilled[T]{Stamp: stamp, Page: page, Policy: policy}
	})
}

// GetEntity fetches one entity
func (s *Store[T]) GetEntity(ctx context.Context, id int64) <-chan struct{} {
	stamp := s.begin(func(st Stamp) Action { return EntityPending{st} })

	return s.run(func() Action {
		entity, err := s.resource.Get(ctx, id)
		if err != nil {
			s.logger.Warn("get failed", "id", id, "error", err)
			return Rejected{Stamp: stamp, Op: OpGet, Err: err}
		}
		return EntityFulfilled[T]{Stamp: stamp, Entity: *entity}
	})
}

// CreateEntity sends a new entity
func (s *Store[T]) CreateEntity(ctx context.Context, entity T) <-chan struct{} {
	stamp := s.begin(func(st Stamp) Action { return MutationPending{st} })

	return s.run(func() Action {
		created, err := s.resource.Create(ctx, entity)
		if err != nil {
			s.logger.Warn("create failed", "error", err)
			return Rejected{Stamp: stamp, Op: OpCreate, Err: err}
		}
		s.logger.Info("entity created", "id", logID((*created).EntityID()))
		return MutationFulfilled[T]{Stamp: stamp, Entity: *created}
	})
}

// UpdateEntity replaces an existing entity. An entity without id is
// rejected without a request.
func (s *Store[T]) UpdateEntity(ctx context.Context, entity T) <-chan struct{} {
	stamp := s.begin(func(st Stamp) Action { return MutationPending{st} })

	if entity.EntityID() == nil {
		s.Dispatch(Rejected{
			Stamp: stamp,
			Op:    OpUpdate,
			Err:   &domain.ValidationError{Message: "cannot update " + s.name + " without id"},
		})
		return closed()
	}

	return s.run(func() Action {
		updated, err := s.resource.Update(ctx, entity)
		if err != nil {
			s.logger.Warn("update failed", "id", *entity.EntityID(), "error", err)
			return Rejected{Stamp: stamp, Op: OpUpdate, Err: err}
		}
		s.logger.Info("entity updated", "id", *entity.EntityID())
		return MutationFulfilled[T]{Stamp: stamp, Entity: *updated}
	})
}

// DeleteEntity removes an entity
func (s *Store[T]) DeleteEntity(ctx context.Context, id int64) <-chan struct{} {
	stamp := s.begin(func(st Stamp) Action { return MutationPending{st} })

	return s.run(func() Action {
		if err := s.resource.Delete(ctx, id); err != nil {
			s.logger.Warn("delete failed", "id", id, "error", err)
			return Rejected{Stamp: stamp, Op: OpDelete, Err: err}
		}
		s.logger.Info("entity deleted", "id", id)
		return DeleteFulfilled{Stamp: stamp}
	})
}

// begin stamps and applies a pending action in one step so no Reset can
// slip in between reading the generation and marking the request.
func (s *Store[T]) begin(pending func(Stamp) Action) Stamp {
	s.mu.Lock()
	stamp := Stamp{Generation: s.state.Generation}
	s.applyLocked(pending(stamp))
	s.mu.Unlock()

	s.deliver()
	return stamp
}

func (s *Store[T]) run(settle func() Action) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Dispatch(settle())
	}()
	return done
}

// applyLocked must be called with s.mu held. Changes are queued under the
// same lock so listeners see them in dispatch order.
func (s *Store[T]) applyLocked(a Action) State[T] {
	prev := s.state
	s.state = Reduce(prev, a)

	s.notifyMu.Lock()
	s.queue = append(s.queue, change[T]{prev: prev, next: s.state})
	s.notifyMu.Unlock()

	return s.state
}

// deliver drains the notification queue unless another goroutine already is.
func (s *Store[T]) deliver() {
	s.notifyMu.Lock()
	if s.delivering {
		s.notifyMu.Unlock()
		return
	}
	s.delivering = true

	for len(s.queue) > 0 {
		c := s.queue[0]
		s.queue = s.queue[1:]
		listeners := make([]Listener[T], 0, len(s.listeners))
		for _, id := range slices.Sorted(maps.Keys(s.listeners)) {
			listeners = append(listeners, s.listeners[id])
		}
		s.notifyMu.Unlock()

		for _, fn := range listeners {
			fn(c.prev, c.next)
		}

		s.notifyMu.Lock()
	}

	s.delivering = false
	s.notifyMu.Unlock()
}

func logID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func closed() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}
