package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"datahub/internal/domain"
	"datahub/internal/services"
)

type filesLoadedMsg struct{ err error }
type fileSavedMsg struct{ err error }
type fileDeletedMsg struct {
	id  int
	err error
}

// filesView is the dashboard: the file list with inline editing, mirroring
// the original Dashboard page. At most one row is in edit at a time; edits
// stage in the FileEditor's buffer and merge into the synchronized list
// only on save.
type filesView struct {
	client domain.FileClient
	syncer *services.ListSyncer[domain.File]
	editor *services.FileEditor

	cursor     int
	editing    bool
	editForm   form
	submitting bool
	errMsg     string
}

func newFilesView(client domain.FileClient, syncer *services.ListSyncer[domain.File]) filesView {
	return filesView{
		client: client,
		syncer: syncer,
		editor: services.NewFileEditor(client, syncer),
	}
}

func (v filesView) loadCmd() tea.Cmd {
	syncer := v.syncer
	return func() tea.Msg {
		return filesLoadedMsg{err: syncer.Load(context.Background())}
	}
}

func (v filesView) saveCmd() tea.Cmd {
	editor := v.editor
	return func() tea.Msg {
		return fileSavedMsg{err: editor.Commit(context.Background())}
	}
}

func (v filesView) deleteCmd(id int) tea.Cmd {
	client := v.client
	return func() tea.Msg {
		return fileDeletedMsg{id: id, err: client.Delete(context.Background(), id)}
	}
}

func (v filesView) update(msg tea.Msg) (filesView, tea.Cmd) {
	switch msg := msg.(type) {
	case filesLoadedMsg:
		v.submitting = false
		v.errMsg = ""
		if msg.err != nil {
			// The stale list stays visible; only the banner changes.
			v.errMsg = msg.err.Error()
		}
		v.cursor = clamp(v.cursor, len(v.syncer.Items()))
		return v, nil

	case fileSavedMsg:
		v.submitting = false
		if msg.err != nil {
			// Buffer and form stay intact so the edit can be retried.
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.editing = false
		return v, nil

	case fileDeletedMsg:
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
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateBrowsing(msg)
	}
	return v, nil
}

func (v filesView) updateBrowsing(msg tea.KeyMsg) (filesView, tea.Cmd) {
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
	case "e":
		if v.cursor < len(items) {
			f := items[v.cursor]
			v.editor.Begin(f)
			v.editing = true
			v.editForm = newForm(
				[2]string{"Filename", v.editor.Field(services.FieldFilename)},
				[2]string{"Description", v.editor.Field(services.FieldDescription)},
				[2]string{"Tags (comma separated)", v.editor.Field(services.FieldTags)},
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

func (v filesView) updateEditing(msg tea.KeyMsg) (filesView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editor.Cancel()
		v.editing = false
		v.errMsg = ""
		return v, nil
	case "enter":
		if v.submitting {
			return v, nil
		}
		v.editor.Set(services.FieldFilename, v.editForm.value("Filename"))
		v.editor.Set(services.FieldDescription, v.editForm.value("Description"))
		v.editor.Set(services.FieldTags, v.editForm.value("Tags (comma separated)"))
		v.submitting = true
		return v, v.saveCmd()
	}
	var cmd tea.Cmd
	v.editForm, cmd = v.editForm.update(msg)
	return v, cmd
}

func (v filesView) view() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Files"))
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(styleError.Render(v.errMsg))
		b.WriteString("\n")
	}

	items := v.syncer.Items()
	if len(items) == 0 {
		b.WriteString(styleMuted.Render("no files"))
		b.WriteString("\n")
	}

	editID, editActive := v.editor.Target()
	for i, f := range items {
		if v.editing && editActive && f.ID == editID {
			b.WriteString(v.editForm.view(nil))
			continue
		}
		row := formatFileRow(f)
		if i == v.cursor {
			b.WriteString(styleSelected.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString(styleHelp.Render("enter: save • esc: cancel • up/down: field"))
	} else {
		b.WriteString(styleHelp.Render("e: edit • d: delete • r: refresh • up/down: move"))
	}
	b.WriteString("\n")
	return b.String()
}

func formatFileRow(f domain.File) string {
	row := fmt.Sprintf("%d  %s", f.ID, f.Filename)
	if f.Description != "" {
		row += styleMuted.Render(" — " + f.Description)
	}
	if len(f.Tags) > 0 {
		names := make([]string, len(f.Tags))
		for i, t := range f.Tags {
			names[i] = t.Name
		}
		row += styleMuted.Render(" [" + strings.Join(names, ", ") + "]")
	}
	return row
}

func clamp(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
