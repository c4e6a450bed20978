package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"datahub/internal/domain"
	"datahub/internal/services"
)

type tagsLoadedMsg struct{ err error }
type tagCreatedMsg struct{ err error }

// tagsView shows every tag and offers a single-field create form, the
// tag page reduced to its essentials.
type tagsView struct {
	client domain.TagClient
	syncer *services.ListSyncer[domain.Tag]

	input      textinput.Model
	submitting bool
	errMsg     string
}

func newTagsView(client domain.TagClient, syncer *services.ListSyncer[domain.Tag]) tagsView {
	in := newInput("new tag name", "")
	in.Focus()
	return tagsView{client: client, syncer: syncer, input: in}
}

func (v tagsView) loadCmd() tea.Cmd {
	syncer := v.syncer
	return func() tea.Msg {
		return tagsLoadedMsg{err: syncer.Load(context.Background())}
	}
}

func (v tagsView) createCmd(name string) tea.Cmd {
	client := v.client
	syncer := v.syncer
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := client.Create(ctx, name); err != nil {
			return tagCreatedMsg{err: err}
		}
		return tagCreatedMsg{err: syncer.ApplyCreate(ctx)}
	}
}

func (v tagsView) update(msg tea.Msg) (tagsView, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		v.submitting = false
		v.errMsg = ""
		if msg.err != nil {
			v.errMsg = msg.err.Error()
		}
		return v, nil

	case tagCreatedMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.input.SetValue("")
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(v.input.Value())
			if v.submitting || name == "" {
				return v, nil
			}
			v.submitting = true
			return v, v.createCmd(name)
		case "ctrl+r":
			return v, v.loadCmd()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v tagsView) view() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Tags"))
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(styleError.Render(v.errMsg))
		b.WriteString("\n")
	}

	items := v.syncer.Items()
	if len(items) == 0 {
		b.WriteString(styleMuted.Render("no tags"))
		b.WriteString("\n")
	}
	for _, t := range items {
		b.WriteString(fmt.Sprintf("  %d  %s\n", t.ID, t.Name))
	}

	b.WriteString("\n")
	b.WriteString(styleLabel.Render("Create tag"))
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	if v.submitting {
		b.WriteString(styleMuted.Render("saving..."))
	} else {
		b.WriteString(styleHelp.Render("enter: create • ctrl+r: refresh"))
	}
	b.WriteString("\n")
	return b.String()
}
