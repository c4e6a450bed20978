package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"datahub/internal/domain"
	"datahub/internal/services"
)

type uploadDoneMsg struct{ err error }

// uploadView is the file-creation form. Validation runs client-side before
// any network call; a successful create is always followed by a full
// reload of the file list, never a local append.
type uploadView struct {
	client  domain.FileClient
	syncer  *services.ListSyncer[domain.File]
	session *services.Session

	frm        form
	fieldErrs  map[string]string
	submitting bool
	errMsg     string
	okMsg      string
}

const (
	uploadFieldFilename    = "Filename"
	uploadFieldDescription = "Description"
	uploadFieldTags        = "Tags (comma separated)"
	uploadFieldUserID      = "User ID"
	uploadFieldPath        = "Local file path (optional)"
)

func newUploadView(client domain.FileClient, syncer *services.ListSyncer[domain.File], session *services.Session) uploadView {
	v := uploadView{client: client, syncer: syncer, session: session}
	v.frm = v.emptyForm()
	return v
}

func (v uploadView) emptyForm() form {
	userID := "1"
	if u := v.session.Current(); u != nil {
		userID = strconv.Itoa(u.ID)
	}
	return newForm(
		[2]string{uploadFieldFilename, ""},
		[2]string{uploadFieldDescription, ""},
		[2]string{uploadFieldTags, ""},
		[2]string{uploadFieldUserID, userID},
		[2]string{uploadFieldPath, ""},
	)
}

// validate applies the form's input contract. Field errors mean the
// network call is never issued.
func (v uploadView) validate() map[string]string {
	errs := map[string]string{}
	if v.frm.value(uploadFieldFilename) == "" && v.frm.value(uploadFieldPath) == "" {
		errs[uploadFieldFilename] = "Filename is required"
	}
	if _, err := strconv.Atoi(v.frm.value(uploadFieldUserID)); err != nil {
		errs[uploadFieldUserID] = "user_id must be a number"
	}
	return errs
}

func (v uploadView) submitCmd() tea.Cmd {
	userID, _ := strconv.Atoi(v.frm.value(uploadFieldUserID))
	filename := v.frm.value(uploadFieldFilename)
	path := v.frm.value(uploadFieldPath)
	upload := domain.FileUpload{
		UserID:      userID,
		Filename:    filename,
		Description: v.frm.value(uploadFieldDescription),
		Tags:        services.SplitTags(v.frm.value(uploadFieldTags)),
	}
	client := v.client
	syncer := v.syncer

	return func() tea.Msg {
		ctx := context.Background()
		if path != "" {
			f, err := os.Open(path)
			if err != nil {
				return uploadDoneMsg{err: fmt.Errorf("failed to open %s: %w", path, err)}
			}
			defer f.Close()
			if upload.Filename == "" {
				upload.Filename = filepath.Base(path)
			}
			upload.Content = f
		}
		if _, err := client.Create(ctx, upload); err != nil {
			return uploadDoneMsg{err: err}
		}
		// Second sequential step: re-fetch so server-derived fields
		// (generated tag ids) land in the list.
		return uploadDoneMsg{err: syncer.ApplyCreate(ctx)}
	}
}

func (v uploadView) update(msg tea.Msg) (uploadView, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.okMsg = "file created"
		v.frm = v.emptyForm()
		v.fieldErrs = nil
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if v.submitting {
				return v, nil
			}
			v.okMsg = ""
			if errs := v.validate(); len(errs) > 0 {
				v.fieldErrs = errs
				return v, nil
			}
			v.fieldErrs = nil
			v.submitting = true
			return v, v.submitCmd()
		}
		var cmd tea.Cmd
		v.frm, cmd = v.frm.update(msg)
		return v, cmd
	}
	return v, nil
}

func (v uploadView) view() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Upload File"))
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(styleError.Render(v.errMsg))
		b.WriteString("\n")
	}
	if v.okMsg != "" {
		b.WriteString(styleMuted.Render(v.okMsg))
		b.WriteString("\n")
	}
	b.WriteString(v.frm.view(v.fieldErrs))
	if v.submitting {
		b.WriteString(styleMuted.Render("uploading..."))
	} else {
		b.WriteString(styleHelp.Render("enter: upload • up/down: field"))
	}
	b.WriteString("\n")
	return b.String()
}
