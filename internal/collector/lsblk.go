package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/sigreer/raidblk/internal/columns"
	"github.com/sigreer/raidblk/internal/command"
)

// LsblkArgs builds the lsblk arguments for columns, restricted to paths.
// Raw mode hex-escapes whitespace inside values so fields split on spaces.
func LsblkArgs(cols []string, paths []string) []string {
	args := []string{"-d", "-a", "-n", "-r", "-b", "-o", strings.ToUpper(strings.Join(cols, ","))}
	return append(args, paths...)
}

// ListDevices runs lsblk for cols. Failures yield an empty listing with
// Err set.
func ListDevices(ctx context.Context, runner command.Runner, lsblk string, cols []string, paths []string) Listing {
	out, err := runner.Output(ctx, lsblk, LsblkArgs(cols, paths)...)
	if err != nil {
		return Listing{Err: fmt.Errorf("failed to list block devices: %w", err)}
	}

	return Listing{Records: ParseOutput(string(out), cols)}
}

// ParseOutput zips each non-blank line of lsblk raw output with cols
func ParseOutput(out string, cols []string) []Record {
	var records []Record

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, " ")
		rec := make(Record, len(cols))
		for i, col := range cols {
			if i >= len(fields) {
				break
			}
			rec[col] = strings.TrimSpace(fields[i])
		}

		// some devices report no size
		if contains(cols, columns.Size) && rec[columns.Size] == "" {
			rec[columns.Size] = "0"
		}

		records = append(records, rec)
	}

	return records
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
