package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"datahub/internal/domain"
	"datahub/internal/services"
)

type collectionsLoadedMsg struct{ err error }
type collectionSavedMsg struct{ err error }
type collectionCreatedMsg struct{ err error }
type collectionDeletedMsg struct {
	id  int
	err error
}

type collectionsMode int

const (
	collectionsBrowsing collectionsMode = iota
	collectionsCreating
	collectionsEditing
)

const (
	colFieldName    = "Name"
	colFieldUserID  = "User ID"
	colFieldFileIDs = "File IDs (comma separated)"
)

// collectionsView mirrors the original Collections page: a create form
// plus the list with inline editing. Membership edits always send the full
// replacement id list.
type collectionsView struct {
	client  domain.CollectionClient
	syncer  *services.ListSyncer[domain.Collection]
	session *services.Session
	editor  *services.CollectionEditor

	mode       collectionsMode
	cursor     int
	frm        form
	fieldErrs  map[string]string
	submitting bool
	errMsg     string
}

func newCollectionsView(client domain.CollectionClient, syncer *services.ListSyncer[domain.Collection], session *services.Session) collectionsView {
	return collectionsView{
		client:  client,
		syncer:  syncer,
		session: session,
		editor:  services.NewCollectionEditor(client, syncer),
	}
}

func (v collectionsView) loadCmd() tea.Cmd {
	syncer := v.syncer
	return func() tea.Msg {
		return collectionsLoadedMsg{err: syncer.Load(context.Background())}
	}
}

func (v collectionsView) createCmd(in domain.CollectionCreate) tea.Cmd {
	client := v.client
	syncer := v.syncer
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := client.Create(ctx, in); err != nil {
			return collectionCreatedMsg{err: err}
		}
		return collectionCreatedMsg{err: syncer.ApplyCreate(ctx)}
	}
}

func (v collectionsView) saveCmd() tea.Cmd {
	editor := v.editor
	return func() tea.Msg {
		return collectionSavedMsg{err: editor.Commit(context.Background())}
	}
}

func (v collectionsView) deleteCmd(id int) tea.Cmd {
	client := v.client
	return func() tea.Msg {
		return collectionDeletedMsg{id: id, err: client.Delete(context.Background(), id)}
	}
}

func (v collectionsView) update(msg tea.Msg) (collectionsView, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionsLoadedMsg:
		v.submitting = false
		v.errMsg = ""
		if msg.err != nil {
			v.errMsg = msg.err.Error()
		}
		v.cursor = clamp(v.cursor, len(v.syncer.Items()))
		return v, nil

	case collectionCreatedMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.mode = collectionsBrowsing
		return v, nil

	case collectionSavedMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.mode = collectionsBrowsing
		return v, nil

	case collectionDeletedMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.syncer.ApplyDelete(msg.id)
		v.errMsg = ""
		v.cursor = clamp(v.cursor, len(v.syncer.Items()))
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case collectionsBrowsing:
			return v.updateBrowsing(msg)
		case collectionsCreating:
			return v.updateCreating(msg)
		case collectionsEditing:
			return v.updateEditing(msg)
		}
	}
	return v, nil
}

func (v collectionsView) updateBrowsing(msg tea.KeyMsg) (collectionsView, tea.Cmd) {
	items := v.syncer.Items()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(items)-1 {
			v.cursor++
		}
	case "r":
		return v, v.loadCmd()
	case "n":
		userID := "1"
		if u := v.session.Current(); u != nil {
			userID = strconv.Itoa(u.ID)
		}
		v.mode = collectionsCreating
		v.frm = newForm(
			[2]string{colFieldName, ""},
			[2]string{colFieldUserID, userID},
		)
		v.fieldErrs = nil
	case "e":
		if v.cursor < len(items) {
			v.editor.Begin(items[v.cursor])
			v.mode = collectionsEditing
			v.frm = newForm(
				[2]string{colFieldName, v.editor.Field(services.FieldName)},
				[2]string{colFieldFileIDs, v.editor.Field(services.FieldFileIDs)},
			)
		}
	case "d":
		if v.submitting || v.cursor >= len(items) {
			return v, nil
		}
		v.submitting = true
		return v, v.deleteCmd(items[v.cursor].ID)
	}
	return v, nil
}

func (v collectionsView) updateCreating(msg tea.KeyMsg) (collectionsView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = collectionsBrowsing
		v.fieldErrs = nil
		return v, nil
	case "enter":
		if v.submitting {
			return v, nil
		}
		errs := map[string]string{}
		if v.frm.value(colFieldName) == "" {
			errs[colFieldName] = "Name is required"
		}
		userID, err := strconv.Atoi(v.frm.value(colFieldUserID))
		if err != nil {
			errs[colFieldUserID] = "user_id must be a number"
		}
		if len(errs) > 0 {
			v.fieldErrs = errs
			return v, nil
		}
		v.fieldErrs = nil
		v.submitting = true
		return v, v.createCmd(domain.CollectionCreate{
			Name:    v.frm.value(colFieldName),
			UserID:  userID,
			FileIDs: []int{},
		})
	}
	var cmd tea.Cmd
	v.frm, cmd = v.frm.update(msg)
	return v, cmd
}

func (v collectionsView) updateEditing(msg tea.KeyMsg) (collectionsView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editor.Cancel()
		v.mode = collectionsBrowsing
		v.errMsg = ""
		return v, nil
	case "enter":
		if v.submitting {
			return v, nil
		}
		v.editor.Set(services.FieldName, v.frm.value(colFieldName))
		v.editor.Set(services.FieldFileIDs, v.frm.value(colFieldFileIDs))
		v.submitting = true
		return v, v.saveCmd()
	}
	var cmd tea.Cmd
	v.frm, cmd = v.frm.update(msg)
	return v, cmd
}

func (v collectionsView) view() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Collections"))
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(styleError.Render(v.errMsg))
		b.WriteString("\n")
	}

	if v.mode == collectionsCreating {
		b.WriteString(v.frm.view(v.fieldErrs))
		b.WriteString(styleHelp.Render("enter: create • esc: back"))
		b.WriteString("\n")
		return b.String()
	}

	items := v.syncer.Items()
	if len(items) == 0 {
		b.WriteString(styleMuted.Render("no collections"))
		b.WriteString("\n")
	}

	editID, editActive := v.editor.Target()
	for i, c := range items {
		if v.mode == collectionsEditing && editActive && c.ID == editID {
			b.WriteString(v.frm.view(nil))
			continue
		}
		row := fmt.Sprintf("%d  %s", c.ID, c.Name) + styleMuted.Render(fmt.Sprintf(" — %d files", len(c.Files)))
		if i == v.cursor {
			b.WriteString(styleSelected.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if v.mode == collectionsEditing {
		b.WriteString(styleHelp.Render("enter: save • esc: cancel • up/down: field"))
	} else {
		b.WriteString(styleHelp.Render("n: new • e: edit • d: delete • r: refresh"))
	}
	b.WriteString("\n")
	return b.String()
}
