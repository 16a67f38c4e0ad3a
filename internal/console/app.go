// Package console implements the interactive administration console.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"docmanagement/internal/admin"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"
)

// Options configures the views
type Options struct {
	PageSize         int
	RelationPageSize int
	Location         *time.Location
}

// App is the console. It owns one store per entity type and shows one
// view at a time.
type App struct {
	folders   *store.Store[models.Folder]
	documents *store.Store[models.Document]
	opts      Options
	out       io.Writer
	logger    *slog.Logger

	mu      sync.Mutex
	pending []string

	location string
	history  []string
	view     view
}

// New creates a console writing to out
func New(folders *store.Store[models.Folder], documents *store.Store[models.Document], opts Options, out io.Writer, logger *slog.Logger) *App {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &App{
		folders:   folders,
		documents: documents,
		opts:      opts,
		out:       out,
		logger:    logger,
	}
}

// Navigate implements admin.Navigator. Controllers call it from store
// listeners; the location is opened once the current command has settled.
func (a *App) Navigate(location string) {
	a.mu.Lock()
	a.pending = append(a.pending, location)
	a.mu.Unlock()
}

// Location returns the location of the current view
func (a *App) Location() string {
	return a.location
}

// Open closes the current view and opens location
func (a *App) Open(ctx context.Context, location string) error {
	route, err := admin.ParseRoute(location)
	if err != nil {
		return err
	}

	if a.view != nil {
		a.view.close()
		a.history = append(a.history, a.location)
	}
	a.location = route.String()
	a.view = a.mount(ctx, route)
	a.logger.Debug("opened view", "location", a.location, "view", route.View.String())
	return nil
}

// Back reopens the previous location
func (a *App) Back(ctx context.Context) error {
	if len(a.history) == 0 {
		return fmt.Errorf("no previous location")
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	if err := a.Open(ctx, prev); err != nil {
		return err
	}
	a.history = a.history[:len(a.history)-1]
	return nil
}

func (a *App) mount(ctx context.Context, route admin.Route) view {
	switch route.Entity {
	case admin.DocumentEntity:
		return mountView(ctx, a, route, a.documents, documentInfo, func() *admin.FormController[models.Document, *admin.DocumentForm] {
			return a.documentForm()
		})
	default:
		return mountView(ctx, a, route, a.folders, folderInfo, func() *admin.FormController[models.Folder, *admin.FolderForm] {
			return admin.NewFormController[models.Folder, *admin.FolderForm](a.folders, admin.FolderMapper{}, a, admin.FolderEntity, a.opts.Location, a.logger)
		})
	}
}

func (a *App) documentForm() *admin.FormController[models.Document, *admin.DocumentForm] {
	mapper := admin.NewDocumentMapper(a.folders, a.opts.RelationPageSize)
	return admin.NewFormController[models.Document, *admin.DocumentForm](a.documents, mapper, a, admin.DocumentEntity, a.opts.Location, a.logger)
}

func mountView[T models.Entity, F admin.Form](
	ctx context.Context,
	a *App,
	route admin.Route,
	st *store.Store[T],
	info entityInfo[T],
	newForm func() *admin.FormController[T, F],
) view {
	switch route.View {
	case admin.ViewDetail:
		c := admin.NewDetailController(st)
		c.Mount(ctx, route.ID)
		return &detailView[T]{info: info, detail: c, loc: a.opts.Location}
	case admin.ViewCreate, admin.ViewEdit:
		c := newForm()
		c.Mount(ctx, route.ID)
		v := &formView[T, F]{form: c}
		if route.Entity == admin.DocumentEntity {
			v.options = a.folderOptions
		}
		return v
	case admin.ViewDelete:
		c := admin.NewDeleteController(st, admin.Navigator(a), route.Entity, route.Query, a.logger)
		c.Mount(ctx, route.ID)
		return &deleteView[T]{info: info, dlg: c, id: route.ID}
	default:
		c := admin.NewListController(st, route.Entity, route.Query, a.opts.PageSize, a.logger)
		c.Mount(ctx)
		return &listView[T]{info: info, list: c, loc: a.opts.Location}
	}
}

// folderOptions lists the folders a document can be filed under
func (a *App) folderOptions(w io.Writer) {
	folders := a.folders.State().Entities
	if len(folders) == 0 {
		return
	}
	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = fmt.Sprintf("%s=%s", formatID(f.ID), f.Title)
	}
	fmt.Fprintf(w, "folders: %s\n", strings.Join(names, ", "))
}

// settle waits for the view's operations, then follows navigation requests
// until none remain.
func (a *App) settle(ctx context.Context) {
	for {
		if a.view != nil {
			a.view.wait()
		}
		next, ok := a.takePending()
		if !ok {
			return
		}
		if err := a.Open(ctx, next); err != nil {
			a.logger.Error("navigation failed", "location", next, "error", err)
			fmt.Fprintf(a.out, "! %s\n", describe(err))
			return
		}
	}
}

func (a *App) takePending() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pending) == 0 {
		return "", false
	}
	next := a.pending[0]
	a.pending = a.pending[1:]
	return next, true
}

// Render writes the current view
func (a *App) Render() {
	fmt.Fprintf(a.out, "[%s]\n", a.location)
	if a.view != nil {
		a.view.render(a.out)
	}
}

// Close unmounts the current view
func (a *App) Close() {
	if a.view != nil {
		a.view.close()
		a.view = nil
	}
}
