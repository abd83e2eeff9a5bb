package member

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// LoginResult is the printable login outcome.
type LoginResult struct {
	Result  string         `json:"result"`
	Profile *models.Member `json:"member,omitempty"`
}

func (r *LoginResult) GetKey() string { return r.Result }

func (r *LoginResult) Human() string {
	if r.Profile == nil {
		return styles.Status(false, "login "+r.Result)
	}
	return styles.Status(true, "login successful") + "\n" + Profile{r.Profile}.Human()
}

// LoginCmd returns the member login subcommand
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a member's username and password",
		Long: `Check a member's username and password. The outcome is one of
successful, not-found or wrong; only a successful login prints the profile.

Examples:
  coffeehub member login --username=annguyen --password=coffee123
  coffeehub member login --username=annguyen --password=coffee123 --quiet
`,
		RunE: handler.Command(handler.Func(runLogin), handler.Connected),
	}
	cmd.Flags().String("username", "", "Username (required)")
	cmd.Flags().String("password", "", "Password (required)")
	for _, name := range []string{"username", "password"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Warn("error marking flag as required", "flag", name, "error", err)
		}
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runLogin(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	username, err := args.MustGetString("username")
	if err != nil {
		return nil, err
	}
	password, err := args.MustGetString("password")
	if err != nil {
		return nil, err
	}

	svc, err := c.App.Members()
	if err != nil {
		return nil, err
	}
	result, m, err := svc.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Result: result.String(), Profile: m}, nil
}
