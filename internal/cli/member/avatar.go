package member

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
)

// AvatarPath is a member's avatar path.
type AvatarPath struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

func (a AvatarPath) GetKey() string { return a.Path }

func (a AvatarPath) Human() string { return a.Path }

// AvatarCmd returns the member avatar subcommand
func AvatarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar <member-id>",
		Short: "Print a member's avatar path (or the default one)",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.Command(handler.Func(runAvatar), handler.Connected),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runAvatar(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	svc, err := c.App.Members()
	if err != nil {
		return nil, err
	}
	path, err := svc.Avatar(ctx, args.Args[0])
	if err != nil {
		return nil, err
	}
	return AvatarPath{ID: args.Args[0], Path: path}, nil
}
