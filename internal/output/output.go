package output

import (
	"bufio"
	"io"

	"github.com/sigreer/raidblk/internal/collector"
)

// PrintTable writes records as tab separated rows of cols. Every value,
// including the last in a row, is followed by a tab. Absent values print
// as empty strings.
func PrintTable(w io.Writer, cols []string, records []collector.Record, headings bool) error {
	bw := bufio.NewWriter(w)

	if headings {
		for _, col := range cols {
			bw.WriteString(col)
			bw.WriteByte('\t')
		}
		bw.WriteByte('\n')
	}

	for _, rec := range records {
		for _, col := range cols {
			bw.WriteString(rec.Get(col))
			bw.WriteByte('\t')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
