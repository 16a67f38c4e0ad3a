package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Form is the editable representation of an entity. Implementations are
// pointers so the controller can edit them in place.
type Form interface {
	validation.Validatable
	// Set assigns a text field by name
	Set(field, value string) error
	// Fields lists name/value pairs in display order
	Fields() []FormField
}

// FormField is one rendered form row
type FormField struct {
	Name  string
	Value string
}

// BlobForm is a form with a binary payload field
type BlobForm interface {
	SetBlob(data []byte, contentType string)
}

// FormMapper converts between an entity's wire and form representations
type FormMapper[T models.Entity, F Form] interface {
	// Defaults returns the form for a new entity
	Defaults(now time.Time, loc *time.Location) F
	// ToForm converts a loaded entity for editing
	ToForm(entity T, loc *time.Location) F
	// FromForm builds the entity to submit. base is the loaded entity when
	// editing; fields the form does not carry are kept from it.
	FromForm(form F, base *T, loc *time.Location) (T, error)
}

// RelationLoader is implemented by mappers whose forms pick related entities
type RelationLoader interface {
	LoadRelations(ctx context.Context) <-chan struct{}
	RelationsLoading() bool
}

// FormController creates or edits one entity
type FormController[T models.Entity, F Form] struct {
	store  *store.Store[T]
	mapper FormMapper[T, F]
	nav    Navigator
	entity string
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger

	mu          sync.Mutex
	form        F
	hasForm     bool
	isNew       bool
	id          int64
	saving      bool
	unsubscribe func()

	ops inflight
}

// NewFormController creates a form controller for entity
func NewFormController[T models.Entity, F Form](
	st *store.Store[T],
	mapper FormMapper[T, F],
	nav Navigator,
	entity string,
	loc *time.Location,
	logger *slog.Logger,
) *FormController[T, F] {
	return &FormController[T, F]{
		store:  st,
		mapper: mapper,
		nav:    nav,
		entity: entity,
		loc:    loc,
		now:    time.Now,
		logger: logger.With("form", entity),
	}
}

// Mount opens the form. id == 0 creates a new entity without fetching;
// otherwise the entity is fetched and the form filled from it. Related
// collections are fetched either way.
func (c *FormController[T, F]) Mount(ctx context.Context, id int64) {
	c.mu.Lock()
	c.id = id
	c.isNew = id == 0
	c.mu.Unlock()

	c.unsubscribe = c.store.Subscribe(func(prev, next store.State[T]) {
		if prev.UpdateSuccess || !next.UpdateSuccess {
			return
		}
		c.mu.Lock()
		saving := c.saving
		c.saving = false
		c.mu.Unlock()

		if saving {
			c.nav.Navigate(ListLocation(c.entity, nil))
		}
	})

	if c.isNew {
		c.store.Reset()
		c.setForm(c.mapper.Defaults(c.now(), c.loc))
	} else {
		c.ops.after(c.store.GetEntity(ctx, id), func() {
			st := c.store.State()
			if st.Entity == nil {
				return
			}
			if eid := (*st.Entity).EntityID(); eid == nil || *eid != id {
				return
			}
			c.setForm(c.mapper.ToForm(*st.Entity, c.loc))
		})
	}

	if rl, ok := any(c.mapper).(RelationLoader); ok {
		c.ops.add(rl.LoadRelations(ctx))
	}
}

// Unmount detaches the form from the store
func (c *FormController[T, F]) Unmount() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// IsNew reports whether the form creates a new entity
func (c *FormController[T, F]) IsNew() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isNew
}

// Form returns the form being edited. ok is false until the entity has
// loaded, and stays false when it could not be.
func (c *FormController[T, F]) Form() (form F, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form, c.hasForm
}

// Set edits one text field
func (c *FormController[T, F]) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasForm {
		return &domain.ValidationError{Message: "form is not loaded"}
	}
	return c.form.Set(field, value)
}

// SetBlob stores a binary payload on forms that have one
func (c *FormController[T, F]) SetBlob(data []byte, contentType string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasForm {
		return &domain.ValidationError{Message: "form is not loaded"}
	}
	bf, ok := any(c.form).(BlobForm)
	if !ok {
		return &domain.ValidationError{Message: fmt.Sprintf("%s has no binary field", c.entity)}
	}
	bf.SetBlob(data, contentType)
	return nil
}

// Save validates the form locally and submits it. Local failures (missing
// required fields, malformed ids or timestamps, unresolved references) are
// returned and nothing is sent; server failures land in Err and leave the
// form as it was.
func (c *FormController[T, F]) Save(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasForm {
		c.mu.Unlock()
		return &domain.ValidationError{Message: "form is not loaded"}
	}
	form, isNew := c.form, c.isNew
	c.mu.Unlock()

	if err := validation.Validate(form); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	var base *T
	if !isNew {
		base = c.store.State().Entity
	}
	entity, err := c.mapper.FromForm(form, base, c.loc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.saving = true
	c.mu.Unlock()

	if isNew {
		c.ops.add(c.store.CreateEntity(ctx, entity))
	} else {
		c.ops.add(c.store.UpdateEntity(ctx, entity))
	}
	return nil
}

// Cancel leaves the form without saving
func (c *FormController[T, F]) Cancel() {
	c.nav.Navigate(ListLocation(c.entity, nil))
}

// Loading reports whether the entity or its relations are being fetched
func (c *FormController[T, F]) Loading() bool {
	if c.store.State().Loading {
		return true
	}
	if rl, ok := any(c.mapper).(RelationLoader); ok {
		return rl.RelationsLoading()
	}
	return false
}

// Updating reports whether a save is in flight
func (c *FormController[T, F]) Updating() bool {
	return c.store.State().Updating
}

// Err returns the last store failure, if any
func (c *FormController[T, F]) Err() error {
	return c.store.State().Err
}

// Wait blocks until every fetch and save the form issued has settled
func (c *FormController[T, F]) Wait() {
	c.ops.wait()
}

func (c *FormController[T, F]) setForm(form F) {
	c.mu.Lock()
	c.form = form
	c.hasForm = true
	c.mu.Unlock()
}
