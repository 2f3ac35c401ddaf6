package columns

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sigreer/raidblk/internal/config"
)

const (
	// Serial is the join key between lsblk records and the RAID inventory
	Serial = "serial"
	Rota   = "rota"
	Size   = "size"
	Slot   = "slot"
	Raid   = "raid"
)

// InvalidColumnError lists every requested column that is in neither set
type InvalidColumnError struct {
	Columns []string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("unknown column: %s", strings.Join(e.Columns, ","))
}

// Query is a validated column request
type Query struct {
	// Display is the caller's request, in the caller's order
	Display []string
	// Base is what lsblk is asked for, including an implicit serial
	Base []string
	// Extra are the RAID-derived columns
	Extra []string
}

// NeedsRaid reports whether any requested column requires the RAID inventory
func (q Query) NeedsRaid() bool {
	return len(q.Extra) > 0 || contains(q.Base, Rota)
}

// Wants reports whether col was requested by the caller or fetched for the join
func (q Query) Wants(col string) bool {
	return contains(q.Base, col) || contains(q.Extra, col)
}

type Resolver struct {
	base  config.ColumnSet
	extra config.ColumnSet
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		base:  cfg.Columns.Base,
		extra: cfg.Columns.Extra,
	}
}

// Parse splits a comma separated column list
func Parse(s string) []string {
	return strings.Split(s, ",")
}

// Resolve partitions requested into base and extra columns
func (r *Resolver) Resolve(requested []string) (Query, error) {
	q := Query{Display: append([]string(nil), requested...)}

	var unknown []string
	for _, col := range requested {
		switch {
		case r.base.Has(col):
			q.Base = append(q.Base, col)
		case r.extra.Has(col):
			q.Extra = append(q.Extra, col)
		default:
			unknown = append(unknown, col)
		}
	}
	if len(unknown) > 0 {
		return Query{}, &InvalidColumnError{Columns: unknown}
	}

	if q.NeedsRaid() && !contains(q.Base, Serial) {
		q.Base = append(q.Base, Serial)
	}

	return q, nil
}

// Help renders the column catalogue for the command help text
func (r *Resolver) Help() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Column", "Description", "Source"})
	for _, c := range r.base {
		t.AppendRow(table.Row{c.Name, c.Description, "lsblk"})
	}
	for _, c := range r.extra {
		t.AppendRow(table.Row{c.Name, c.Description, "raid controller"})
	}
	return t.Render()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
