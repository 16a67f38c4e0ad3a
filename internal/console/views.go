package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"docmanagement/internal/admin"
	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
)

// errUnknownCommand is returned by views for commands they do not handle
var errUnknownCommand = errors.New("unknown command")

// view is one screen of the console
type view interface {
	render(w io.Writer)
	handle(ctx context.Context, cmd string, args []string) error
	commands() string
	wait()
	close()
}

// listView shows a paginated list
type listView[T models.Entity] struct {
	info entityInfo[T]
	list *admin.ListController[T]
	loc  *time.Location
}

func (v *listView[T]) render(w io.Writer) {
	if err := v.list.Err(); err != nil {
		fmt.Fprintf(w, "! %s\n", describe(err))
	}
	if v.list.Empty() {
		fmt.Fprintf(w, "No %s found\n", v.info.plural)
		return
	}

	p := v.list.Pagination()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(v.info.columns))
	for i, c := range v.info.columns {
		headers[i] = strings.ToUpper(c.name)
		if c.name == p.Sort {
			headers[i] += sortMarker(p.Order)
		}
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range v.list.Rows() {
		cells := make([]string, len(v.info.columns))
		for i, c := range v.info.columns {
			cells[i] = c.value(row, v.loc)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	footer := fmt.Sprintf("%d of %d %s", len(v.list.Rows()), v.list.TotalItems(), strings.ToLower(v.info.plural))
	if v.list.HasMore() {
		footer += " (more available)"
	}
	fmt.Fprintln(w, footer)
}

func (v *listView[T]) handle(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "more":
		if !v.list.LoadMore(ctx, 1) {
			return fmt.Errorf("no more %s", strings.ToLower(v.info.plural))
		}
	case "sort":
		if len(args) != 1 || !v.info.sortable(args[0]) {
			return fmt.Errorf("usage: sort <%s>", strings.Join(v.sortableColumns(), "|"))
		}
		v.list.Sort(ctx, args[0])
	case "refresh":
		v.list.Refresh(ctx)
	default:
		return errUnknownCommand
	}
	return nil
}

func (v *listView[T]) sortableColumns() []string {
	var out []string
	for _, c := range v.info.columns {
		if c.sortable {
			out = append(out, c.name)
		}
	}
	return out
}

func (v *listView[T]) commands() string {
	return "more, sort <column>, refresh"
}

func (v *listView[T]) wait()  { v.list.Wait() }
func (v *listView[T]) close() { v.list.Unmount() }

// detailView shows one entity
type detailView[T models.Entity] struct {
	info   entityInfo[T]
	detail *admin.DetailController[T]
	loc    *time.Location
}

func (v *detailView[T]) render(w io.Writer) {
	entity := v.detail.Entity()
	if entity == nil {
		if err := v.detail.Err(); err != nil {
			fmt.Fprintf(w, "! %s\n", describe(err))
		}
		return
	}
	writeFields(w, v.info.fields(*entity, v.loc))
}

func (v *detailView[T]) handle(context.Context, string, []string) error {
	return errUnknownCommand
}

func (v *detailView[T]) commands() string { return "" }
func (v *detailView[T]) wait()            { v.detail.Wait() }
func (v *detailView[T]) close()           {}

// formView edits one entity
type formView[T models.Entity, F admin.Form] struct {
	form    *admin.FormController[T, F]
	options func(w io.Writer)
}

func (v *formView[T, F]) render(w io.Writer) {
	if err := v.form.Err(); err != nil {
		fmt.Fprintf(w, "! %s\n", describe(err))
	}
	form, ok := v.form.Form()
	if !ok {
		return
	}
	writeFields(w, form.Fields())
	if v.options != nil {
		v.options(w)
	}
}

func (v *formView[T, F]) handle(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set <field> [value]")
		}
		return v.form.Set(args[0], strings.Join(args[1:], " "))
	case "file":
		if len(args) != 1 {
			return errors.New("usage: file <path>")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return v.form.SetBlob(data, contentType(args[0], data))
	case "save":
		return v.form.Save(ctx)
	case "cancel":
		v.form.Cancel()
	default:
		return errUnknownCommand
	}
	return nil
}

func (v *formView[T, F]) commands() string {
	return "set <field> <value>, file <path>, save, cancel"
}

func (v *formView[T, F]) wait()  { v.form.Wait() }
func (v *formView[T, F]) close() { v.form.Unmount() }

// deleteView asks for confirmation
type deleteView[T models.Entity] struct {
	info entityInfo[T]
	dlg  *admin.DeleteController[T]
	id   int64
}

func (v *deleteView[T]) render(w io.Writer) {
	if err := v.dlg.Err(); err != nil {
		fmt.Fprintf(w, "! %s\n", describe(err))
	}
	entity := v.dlg.Entity()
	if entity == nil {
		return
	}
	fmt.Fprintf(w, "Are you sure you want to delete %s %d? (confirm/cancel)\n", v.info.name, v.id)
}

func (v *deleteView[T]) handle(ctx context.Context, cmd string, _ []string) error {
	switch cmd {
	case "confirm":
		v.dlg.Confirm(ctx)
	case "cancel":
		v.dlg.Cancel()
	default:
		return errUnknownCommand
	}
	return nil
}

func (v *deleteView[T]) commands() string { return "confirm, cancel" }
func (v *deleteView[T]) wait()            { v.dlg.Wait() }
func (v *deleteView[T]) close()           { v.dlg.Unmount() }

func writeFields(w io.Writer, fields []admin.FormField) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Name, f.Value)
	}
	_ = tw.Flush()
}

func sortMarker(o models.Order) string {
	if o == models.DESC {
		return " v"
	}
	return " ^"
}

// contentType prefers the file extension and falls back to sniffing
func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// describe renders an error for the user by its kind
func describe(err error) string {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return "not found: " + err.Error()
	case domain.KindValidation:
		return "invalid: " + err.Error()
	case domain.KindNetwork:
		return "server unreachable: " + err.Error()
	default:
		return err.Error()
	}
}
