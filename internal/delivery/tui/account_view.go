package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"datahub/internal/domain"
	"datahub/internal/services"
)

type authDoneMsg struct {
	user *domain.User
	err  error
}

type authAction int

const (
	actionLogin authAction = iota
	actionRegister
)

// accountView is the login/register form plus a signed-in summary with
// logout. Credential validation happens in the session service before any
// request goes out.
type accountView struct {
	session *services.Session

	action     authAction
	username   textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errMsg     string
	okMsg      string
}

func newAccountView(session *services.Session) accountView {
	user := newInput("username", "")
	user.Focus()
	pass := newInput("password", "")
	pass.EchoMode = textinput.EchoPassword
	return accountView{session: session, username: user, password: pass}
}

func (v accountView) submitCmd() tea.Cmd {
	session := v.session
	action := v.action
	creds := domain.Credentials{
		Username: strings.TrimSpace(v.username.Value()),
		Password: v.password.Value(),
	}
	return func() tea.Msg {
		ctx := context.Background()
		var (
			user *domain.User
			err  error
		)
		if action == actionRegister {
			user, err = session.Register(ctx, creds)
		} else {
			user, err = session.Login(ctx, creds)
		}
		return authDoneMsg{user: user, err: err}
	}
}

func (v accountView) update(msg tea.Msg) (accountView, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.okMsg = "welcome, " + msg.user.Username
		v.username.SetValue("")
		v.password.SetValue("")
		return v, nil

	case tea.KeyMsg:
		if v.session.Authenticated() {
			if msg.String() == "ctrl+d" {
				v.session.Logout()
				v.errMsg = ""
				v.okMsg = ""
			}
			return v, nil
		}

		switch msg.String() {
		case "ctrl+r":
			if v.action == actionLogin {
				v.action = actionRegister
			} else {
				v.action = actionLogin
			}
			v.errMsg = ""
			return v, nil
		case "up", "down":
			if v.focus == 0 {
				v.username.Blur()
				v.password.Focus()
				v.focus = 1
			} else {
				v.password.Blur()
				v.username.Focus()
				v.focus = 0
			}
			return v, nil
		case "enter":
			if v.submitting {
				return v, nil
			}
			v.okMsg = ""
			v.submitting = true
			return v, v.submitCmd()
		}

		var cmd tea.Cmd
		if v.focus == 0 {
			v.username, cmd = v.username.Update(msg)
		} else {
			v.password, cmd = v.password.Update(msg)
		}
		return v, cmd
	}
	return v, nil
}

func (v accountView) view() string {
	var b strings.Builder

	if u := v.session.Current(); u != nil {
		b.WriteString(styleTitle.Render("Account"))
		b.WriteString("\n")
		if v.errMsg != "" {
			b.WriteString(styleError.Render(v.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("signed in as " + u.Username + "\n")
		b.WriteString(styleHelp.Render("ctrl+d: log out"))
		b.WriteString("\n")
		return b.String()
	}

	title := "Login"
	if v.action == actionRegister {
		title = "Register"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(styleError.Render(v.errMsg))
		b.WriteString("\n")
	}
	if v.okMsg != "" {
		b.WriteString(styleMuted.Render(v.okMsg))
		b.WriteString("\n")
	}

	b.WriteString(styleLabel.Render("Username"))
	b.WriteString("\n")
	b.WriteString(v.username.View())
	b.WriteString("\n")
	b.WriteString(styleLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n")

	if v.submitting {
		b.WriteString(styleMuted.Render("signing in..."))
	} else {
		b.WriteString(styleHelp.Render("enter: submit • ctrl+r: switch login/register • up/down: field"))
	}
	b.WriteString("\n")
	return b.String()
}
