package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ethereum-optimism/optimism/op-service/ioutil"

	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

var OutFilePerm = os.FileMode(0o644)

// FileName derives the result file name from the search parameters.
func FileName(signature string, difficulty, maxResults int, objective string, enc Encoder) string {
	return fmt.Sprintf("%s--zero=%d-max=%d-%s.%s", signature, difficulty, maxResults, objective, enc.Ext())
}

// WriteFile encodes the results of a search for signature into path. The file only
// appears once it is complete. Paths ending in ".gz" are gzip-compressed.
func WriteFile(path string, enc Encoder, signature string, rs []selector.Result) error {
	var out io.WriteCloser
	out, err := ioutil.NewAtomicWriterCompressed(path, OutFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create result file %q: %w", path, err)
	}
	bw := bufio.NewWriter(out)
	if err := enc.Encode(bw, signature, rs); err != nil {
		abort(out)
		return fmt.Errorf("failed to encode %s results: %w", enc.Name(), err)
	}
	if err := bw.Flush(); err != nil {
		abort(out)
		return fmt.Errorf("failed to write result file %q: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish result file %q: %w", path, err)
	}
	return nil
}

// abort drops the temporary file of an unfinished write.
func abort(w io.WriteCloser) {
	if a, ok := w.(interface{ Abort() error }); ok {
		_ = a.Abort()
	}
}
