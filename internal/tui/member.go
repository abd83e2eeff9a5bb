package tui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/models"
	memberservice "github.com/thenoetrevino/coffeehub/internal/services/member"
)

func (m Model) handleMemberKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		if m.requireConnection() {
			return m, m.newAccount()
		}
	case key.Matches(msg, m.keys.Edit):
		if !m.requireConnection() {
			return m, nil
		}
		if m.member == nil {
			return m, m.openLoginForm()
		}
		return m, m.openProfileForm(m.member, "Edit profile")
	case key.Matches(msg, m.keys.Delete):
		if m.member != nil {
			m.notes.Info("logged out " + m.member.Username)
			m.member = nil
		}
	case key.Matches(msg, m.keys.Refresh):
		if m.member != nil && m.requireConnection() {
			return m, m.loadMember(m.member.ID)
		}
	}
	return m, nil
}

func (m *Model) openLoginForm() tea.Cmd {
	username, password := "", ""
	if m.cfg.AutoFillPassword {
		username, password = models.DemoUsername, models.DemoPassword
	}
	f := newForm(loginForm, "Member login").
		add("username", "Username", username, "").
		addPassword("password", "Password", password)
	return m.openForm(f)
}

// openProfileForm edits a copy of member; the original is left untouched
// until the save succeeds.
func (m *Model) openProfileForm(member *models.Member, title string) tea.Cmd {
	cp := *member
	m.editing = &cp

	birth := ""
	if !member.Birth.IsZero() {
		birth = member.Birth.Format(models.DateLayout)
	}
	passwordLabel := "New password"
	if !member.HasPassword() {
		passwordLabel = "Password"
	}

	f := newForm(profileForm, title).
		addReadOnly("id", "ID", member.ID, "").
		addReadOnly("level", "Level", member.Level, "").
		add("username", "Username", member.Username, "").
		add("fullname", "Full name", member.FullName, "").
		add("birth", "Birth", birth, models.DateLayout).
		add("phone", "Phone", member.Phone, "").
		add("email", "Email", member.Email, "").
		add("address", "Address", member.Address, "").
		add("avatar", "Avatar", member.Avatar, models.DefaultAvatarPath).
		addPassword("password", passwordLabel, "").
		addPassword("confirm", "Confirm", "")
	return m.openForm(f)
}

func profileFromForm(f *form, base *models.Member) (memberservice.SaveRequest, error) {
	if base == nil {
		return memberservice.SaveRequest{}, &models.ValidationError{Field: "member", Reason: "no profile open"}
	}
	out := *base
	out.Username = f.value("username")
	out.FullName = f.value("fullname")
	out.Phone = f.value("phone")
	out.Email = f.value("email")
	out.Address = f.value("address")
	out.Avatar = f.value("avatar")
	out.Birth = time.Time{}
	if v := f.value("birth"); v != "" {
		birth, err := cli.ParseDate("birth", v)
		if err != nil {
			return memberservice.SaveRequest{}, err
		}
		out.Birth = birth
	}
	return memberservice.SaveRequest{
		Member:      &out,
		NewPassword: f.rawValue("password"),
		Confirm:     f.rawValue("confirm"),
	}, nil
}

func (m Model) viewMember() string {
	st := m.styles
	if !m.app.Connected() {
		return st.subtle.Render("Connect on the Hub tab to log in.")
	}
	if m.member == nil {
		return st.subtle.Render(m.keys.Edit.Help().Key + " log in  •  " + m.keys.Add.Help().Key + " new account")
	}

	mem := m.member
	birth := ""
	if !mem.Birth.IsZero() {
		birth = mem.Birth.Format(models.DateLayout)
	}
	rows := [][2]string{
		{"ID", mem.ID},
		{"Username", mem.Username},
		{"Level", mem.Level},
		{"Full name", mem.FullName},
		{"Birth", birth},
		{"Phone", mem.Phone},
		{"Email", mem.Email},
		{"Address", mem.Address},
		{"Avatar", mem.Avatar},
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Profile"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(st.label.Render(r[0] + strings.Repeat(" ", 11-len(r[0]))))
		b.WriteString(st.value.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.subtle.Render(strings.Join([]string{
		m.keys.Edit.Help().Key + " edit",
		m.keys.Add.Help().Key + " new account",
		m.keys.Delete.Help().Key + " log out",
		m.keys.Refresh.Help().Key + " refresh",
	}, "  •  ")))
	return b.String()
}
