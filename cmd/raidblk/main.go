package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sigreer/raidblk/internal/columns"
	"github.com/sigreer/raidblk/internal/config"
	"github.com/sigreer/raidblk/internal/drive"
	"github.com/sigreer/raidblk/internal/output"
	"github.com/sigreer/raidblk/internal/version"
)

// usageError marks command line mistakes, reported with the usage text
type usageError struct {
	error
}

func (e usageError) Unwrap() error {
	return e.error
}

type scannerFunc func() (*drive.Scanner, error)

func newRootCmd(cfg *config.Config, newScanner scannerFunc) *cobra.Command {
	resolver := columns.NewResolver(cfg)

	cmd := &cobra.Command{
		Use:   "raidblk [flags] [device...]",
		Short: "List block devices with RAID controller details",
		Long: `raidblk lists block devices like lsblk and adds what the hardware RAID
controller knows about them: the physical slots behind each virtual disk and
its RAID level. The rotational flag of a virtual disk is taken from its member
drives rather than from the kernel.

RAID data is read with storcli (perccli on Dell PERC cards) and matched to
block devices by serial number. Without a controller the RAID columns print
as "-".

Available columns:
` + resolver.Help(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")
			noHeadings, _ := cmd.Flags().GetBool("noheadings")

			q, err := resolver.Resolve(columns.Parse(out))
			if err != nil {
				return usageError{err}
			}

			scanner, err := newScanner()
			if err != nil {
				return err
			}

			listing := scanner.Scan(cmd.Context(), q, args)
			return output.PrintTable(cmd.OutOrStdout(), q.Display, listing.Records, !noHeadings)
		},
	}

	cmd.Flags().StringP("output", "o", "name", "output columns")
	cmd.Flags().BoolP("noheadings", "n", false, "don't print headings")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	return cmd
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	log.WithField("version", version.Version).Debug("raidblk starting")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading column catalogue: %v\n", err)
		os.Exit(1)
	}

	rootCmd := newRootCmd(cfg, func() (*drive.Scanner, error) {
		return drive.NewScanner(cfg)
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
			os.Exit(2)
		}
		os.Exit(1)
	}
}
