package member

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/models"
	memberservice "github.com/thenoetrevino/coffeehub/internal/services/member"
)

var profileFlags = []struct{ name, usage string }{
	{"username", "Username"},
	{"fullname", "Full name"},
	{"birth", "Birth date, YYYY-MM-DD"},
	{"phone", "Phone number"},
	{"email", "Email address"},
	{"address", "Postal address"},
	{"level", "Membership level"},
	{"avatar", "Avatar path"},
	{"password", "New password"},
	{"confirm", "New password again"},
}

func addProfileFlags(cmd *cobra.Command) {
	for _, f := range profileFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	handler.AddOutputFlags(cmd)
}

// applyProfileFlags copies every given flag onto m.
func applyProfileFlags(args *handler.Arguments, m *models.Member) error {
	set := func(name string, dst *string) {
		if args.Has(name) {
			*dst = args.GetString(name, "")
		}
	}
	set("username", &m.Username)
	set("fullname", &m.FullName)
	set("phone", &m.Phone)
	set("email", &m.Email)
	set("address", &m.Address)
	set("level", &m.Level)
	set("avatar", &m.Avatar)

	if args.Has("birth") {
		birth, err := cli.ParseDate("birth", args.GetString("birth", ""))
		if err != nil {
			return err
		}
		m.Birth = birth
	}
	return nil
}

// SaveCmd returns the member save subcommand
func SaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <member-id>",
		Short: "Update a member profile, or create it if the id is unknown",
		Long: `Update the given fields of a member profile. Fields that are not
given keep their stored value. A member without a stored password needs
--password and --confirm.

Examples:
  coffeehub member save TCHMN00001S --phone=0901234567
  coffeehub member save TCHMN00001S --password=newpass --confirm=newpass
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.Func(runSave), handler.Connected),
	}
	addProfileFlags(cmd)
	return cmd
}

func runSave(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	svc, err := c.App.Members()
	if err != nil {
		return nil, err
	}

	id := args.Args[0]
	m, err := svc.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		m = &models.Member{ID: id, Level: models.DefaultMemberLevel}
	} else if err != nil {
		return nil, err
	}

	if err := applyProfileFlags(args, m); err != nil {
		return nil, err
	}

	err = svc.Save(ctx, memberservice.SaveRequest{
		Member:      m,
		NewPassword: args.GetString("password", ""),
		Confirm:     args.GetString("confirm", ""),
	})
	if err != nil {
		return nil, err
	}
	return Profile{m}, nil
}

// NewCmd returns the member new subcommand
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a member account with a freshly minted id",
		Long: `Create a member account. The id is minted from the global sequence
and the level defaults to Standard.

Examples:
  coffeehub member new --username=dungvo --password=espresso --confirm=espresso \
    --fullname="Dung Vo" --birth=2000-01-31
`,
		RunE: handler.Command(handler.Func(runNew), handler.Connected),
	}
	addProfileFlags(cmd)
	return cmd
}

func runNew(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	svc, err := c.App.Members()
	if err != nil {
		return nil, err
	}
	m, err := svc.NewAccount(ctx)
	if err != nil {
		return nil, err
	}
	if err := applyProfileFlags(args, m); err != nil {
		return nil, err
	}

	err = svc.Save(ctx, memberservice.SaveRequest{
		Member:      m,
		NewPassword: args.GetString("password", ""),
		Confirm:     args.GetString("confirm", ""),
	})
	if err != nil {
		return nil, err
	}
	return Profile{m}, nil
}
