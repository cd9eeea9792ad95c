package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

// TSV writes one tab-separated line per result, without a header.
type TSV struct{}

func (TSV) Name() string { return "tsv" }
func (TSV) Ext() string  { return "tsv" }

func (TSV) Encode(w io.Writer, _ string, rs []selector.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range rs {
		if _, err := fmt.Fprintf(bw, "%08x\t%d\t%d\t%s\n", r.Selector, r.Zeros, r.Leading, r.Signature); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CSV writes a header row, then one row per result with every field quoted.
type CSV struct{}

func (CSV) Name() string { return "csv" }
func (CSV) Ext() string  { return "csv" }

var csvHeader = []string{"selector", "zeros", "leading", "signature"}

func (CSV) Encode(w io.Writer, _ string, rs []selector.Result) error {
	bw := bufio.NewWriter(w)
	if err := writeQuoted(bw, csvHeader...); err != nil {
		return err
	}
	for _, r := range rs {
		if err := writeQuoted(bw, r.Hex(), fmt.Sprint(r.Zeros), fmt.Sprint(r.Leading), r.Signature); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeQuoted(w *bufio.Writer, fields ...string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
