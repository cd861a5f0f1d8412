package tablewriter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"framepick/domain/trajectory"
)

// WriteTSV writes the merged frame table as tab-delimited text:
// a `Frame <name_1> … <name_k>` header followed by the aligned rows.
func WriteTSV(w io.Writer, table *trajectory.Table) error {
	bw := bufio.NewWriter(w)

	header := append([]string{"Frame"}, table.SeriesNames...)
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}

	for i := range table.Frames {
		frame, row := table.Row(i)
		fields := make([]string, 0, len(row)+1)
		fields = append(fields, strconv.Itoa(frame))
		for _, v := range row {
			fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteTSVFile writes the merged table to a file path.
func WriteTSVFile(path string, table *trajectory.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}
	defer f.Close()

	if err := WriteTSV(f, table); err != nil {
		return fmt.Errorf("writing table file: %w", err)
	}
	return nil
}
