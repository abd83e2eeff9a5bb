// Package member holds the member account commands.
//
// e.g., coffeehub member login --username annguyen --password coffee123
package member

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// MemberCmd returns the member parent command
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Member accounts (document and key-value backends)",
	}

	cmd.AddCommand(LoginCmd())
	cmd.AddCommand(AvatarCmd())
	cmd.AddCommand(SaveCmd())
	cmd.AddCommand(NewCmd())

	return cmd
}

// Profile is a printable member profile.
type Profile struct {
	*models.Member
}

func (p Profile) GetKey() string { return p.ID }

func (p Profile) Human() string {
	birth := "-"
	if !p.Birth.IsZero() {
		birth = p.Birth.Format(models.DateLayout)
	}
	lines := []string{
		styles.TitleStyle.Render(fmt.Sprintf("%s (%s)", p.FullName, p.Username)),
		styles.Field("ID", p.ID),
		styles.Field("Level", p.Level),
		styles.Field("Birth", birth),
		styles.Field("Phone", p.Phone),
		styles.Field("Email", p.Email),
		styles.Field("Address", p.Address),
		styles.Field("Avatar", p.Avatar),
	}
	return styles.RenderCard(strings.Join(lines, "\n"))
}
