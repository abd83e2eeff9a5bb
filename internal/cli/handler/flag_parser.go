// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// Changed reports whether the flag was given.
func (p *FlagParser) Changed(flagName string) bool {
	return p.cmd.Flags().Changed(flagName)
}

// ParseString extracts a required, non-blank string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &cli.UsageError{Msg: fmt.Sprintf("--%s is required", flagName)}
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	return strings.TrimSpace(value), err
}

// ParseID extracts a required positive int flag
func (p *FlagParser) ParseID(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if value <= 0 {
		return 0, &cli.UsageError{Msg: fmt.Sprintf("--%s must be greater than 0", flagName)}
	}
	return value, nil
}

// ParseInt64 extracts an int64 flag
func (p *FlagParser) ParseInt64(flagName string) (int64, error) {
	return p.cmd.Flags().GetInt64(flagName)
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// ParseDate extracts a required YYYY-MM-DD flag
func (p *FlagParser) ParseDate(flagName string) (time.Time, error) {
	value, err := p.ParseString(flagName)
	if err != nil {
		return time.Time{}, err
	}
	return cli.ParseDate(flagName, value)
}

// ParseGender extracts a male/female flag
func (p *FlagParser) ParseGender(flagName string) (bool, error) {
	value, err := p.ParseString(flagName)
	if err != nil {
		return false, err
	}
	return cli.ParseGender(value)
}
