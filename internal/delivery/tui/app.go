package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datahub/internal/domain"
	"datahub/internal/services"
)

// Deps bundles the services and clients the interactive UI works against.
type Deps struct {
	Session     *services.Session
	Files       domain.FileClient
	Collections domain.CollectionClient
	Tags        domain.TagClient
	Logger      *slog.Logger
}

type view int

const (
	viewFiles view = iota
	viewUpload
	viewCollections
	viewTags
	viewAccount
)

var viewNames = []string{"Files", "Upload", "Collections", "Tags", "Account"}

// appModel is the root bubbletea model. Each tab owns its view state; the
// per-resource syncers and editors live inside the views, so all shared
// state is mutated from this program's single update loop plus the one
// outstanding command it gates per view.
type appModel struct {
	deps Deps

	view   view
	width  int
	height int

	files       filesView
	upload      uploadView
	collections collectionsView
	tags        tagsView
	account     accountView
}

func newAppModel(deps Deps) appModel {
	filesSyncer := services.NewListSyncer(deps.Files.List, func(f domain.File) int { return f.ID })
	collectionsSyncer := services.NewListSyncer(deps.Collections.List, func(c domain.Collection) int { return c.ID })
	tagsSyncer := services.NewListSyncer(deps.Tags.List, func(t domain.Tag) int { return t.ID })

	return appModel{
		deps:        deps,
		files:       newFilesView(deps.Files, filesSyncer),
		upload:      newUploadView(deps.Files, filesSyncer, deps.Session),
		collections: newCollectionsView(deps.Collections, collectionsSyncer, deps.Session),
		tags:        newTagsView(deps.Tags, tagsSyncer),
		account:     newAccountView(deps.Session),
	}
}

// Run starts the interactive UI and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m appModel) Init() tea.Cmd {
	return m.files.loadCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.switchTo((m.view + 1) % view(len(viewNames)))
		case "shift+tab":
			return m.switchTo((m.view + view(len(viewNames)) - 1) % view(len(viewNames)))
		}
	}
	return m.route(msg)
}

// switchTo changes the active tab. List views re-fetch on entry, the same
// way the original pages load on mount.
func (m appModel) switchTo(v view) (tea.Model, tea.Cmd) {
	m.view = v
	switch v {
	case viewFiles:
		return m, m.files.loadCmd()
	case viewCollections:
		return m, m.collections.loadCmd()
	case viewTags:
		return m, m.tags.loadCmd()
	}
	return m, nil
}

// route delivers async results to the view that started them, even if the
// user has navigated away meanwhile, and everything else (keys) to the
// active view.
func (m appModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case filesLoadedMsg, fileSavedMsg, fileDeletedMsg:
		m.files, cmd = m.files.update(msg)
		return m, cmd
	case uploadDoneMsg:
		m.upload, cmd = m.upload.update(msg)
		return m, cmd
	case collectionsLoadedMsg, collectionSavedMsg, collectionDeletedMsg, collectionCreatedMsg:
		m.collections, cmd = m.collections.update(msg)
		return m, cmd
	case tagsLoadedMsg, tagCreatedMsg:
		m.tags, cmd = m.tags.update(msg)
		return m, cmd
	case authDoneMsg:
		m.account, cmd = m.account.update(msg)
		if done, ok := msg.(authDoneMsg); ok && done.err == nil {
			// Successful sign-in lands on the file list.
			m.view = viewFiles
			return m, tea.Batch(cmd, m.files.loadCmd())
		}
		return m, cmd
	}

	switch m.view {
	case viewFiles:
		m.files, cmd = m.files.update(msg)
	case viewUpload:
		m.upload, cmd = m.upload.update(msg)
	case viewCollections:
		m.collections, cmd = m.collections.update(msg)
	case viewTags:
		m.tags, cmd = m.tags.update(msg)
	case viewAccount:
		m.account, cmd = m.account.update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.navView())
	b.WriteString("\n\n")

	switch m.view {
	case viewFiles:
		b.WriteString(m.files.view())
	case viewUpload:
		b.WriteString(m.upload.view())
	case viewCollections:
		b.WriteString(m.collections.view())
	case viewTags:
		b.WriteString(m.tags.view())
	case viewAccount:
		b.WriteString(m.account.view())
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("tab: next view • shift+tab: previous • ctrl+c: quit"))
	return b.String()
}

func (m appModel) navView() string {
	tabs := make([]string, 0, len(viewNames)+2)
	tabs = append(tabs, styleBrand.Render("Data-Hub"), " ")
	for i, name := range viewNames {
		st := styleTab
		if view(i) == m.view {
			st = styleTabActive
		}
		tabs = append(tabs, st.Render(name))
	}

	greeting := styleMuted.Render("not logged in")
	if u := m.deps.Session.Current(); u != nil {
		greeting = styleMuted.Render("Hi, " + u.Username)
	}
	tabs = append(tabs, "  ", greeting)
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
