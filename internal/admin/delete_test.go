package admin

import (
	"context"
	"net/url"
	"testing"

	"docmanagement/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteController_ConfirmNavigatesBack(t *testing.T) {
	res := newFakeResource(folderWithID, numberedFolders(3)...)
	st := newFolderStore(res)
	nav := &recorder{}
	query := url.Values{"page": {"2"}, "sort": {"title,asc"}}
	dlg := NewDeleteController(st, nav, FolderEntity, query, discardLogger())
	ctx := context.Background()

	dlg.Mount(ctx, 3)
	defer dlg.Unmount()
	dlg.Wait()

	require.NotNil(t, dlg.Entity())
	assert.Equal(t, int64(3), *dlg.Entity().ID)

	dlg.Confirm(ctx)
	dlg.Wait()

	state := st.State()
	assert.Nil(t, state.Entity)
	assert.True(t, state.UpdateSuccess)
	assert.Equal(t, []int64{3}, res.deleted)
	assert.Equal(t, []string{"/folder?page=2&sort=title%2Casc"}, nav.visited())

	// a later unrelated success must not navigate again
	<-st.CreateEntity(ctx, models.Folder{Title: "x"})
	assert.Len(t, nav.visited(), 1)
}

func TestDeleteController_Cancel(t *testing.T) {
	res := newFakeResource(folderWithID, numberedFolders(1)...)
	nav := &recorder{}
	dlg := NewDeleteController(newFolderStore(res), nav, FolderEntity, nil, discardLogger())

	dlg.Mount(context.Background(), 1)
	defer dlg.Unmount()
	dlg.Wait()
	dlg.Cancel()

	assert.Empty(t, res.deleted)
	assert.Equal(t, []string{"/folder"}, nav.visited())
}

func TestDetailController(t *testing.T) {
	res := newFakeResource(folderWithID, numberedFolders(2)...)
	detail := NewDetailController(newFolderStore(res))

	detail.Mount(context.Background(), 2)
	detail.Wait()
	require.NotNil(t, detail.Entity())
	assert.Equal(t, "folder 2", detail.Entity().Title)

	detail.Mount(context.Background(), 99)
	detail.Wait()
	assert.Nil(t, detail.Entity())
	assert.Error(t, detail.Err())
}
