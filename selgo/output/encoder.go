package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

// Encoder renders the ordered results of a search for signature in one file format.
// Every encoder keeps the order it was given.
type Encoder interface {
	Name() string
	Ext() string
	Encode(w io.Writer, signature string, rs []selector.Result) error
}

var encoders = map[string]Encoder{}

func register(e Encoder) {
	encoders[e.Name()] = e
}

func init() {
	register(TSV{})
	register(CSV{})
	register(JSON{})
	register(XML{})
	register(YAML{})
}

// Lookup returns the encoder registered under name.
func Lookup(name string) (Encoder, error) {
	e, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q, expected one of %v", name, Names())
	}
	return e, nil
}

func Names() []string {
	out := make([]string, 0, len(encoders))
	for name := range encoders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Record is the serialized view of one result.
type Record struct {
	XMLName   xml.Name `json:"-" yaml:"-" xml:"result"`
	Selector  string   `json:"selector" yaml:"selector" xml:"selector,attr"`
	Zeros     int      `json:"zeros" yaml:"zeros" xml:"zeros,attr"`
	Leading   int      `json:"leading" yaml:"leading" xml:"leading,attr"`
	Signature string   `json:"signature" yaml:"signature" xml:",chardata"`
}

func NewRecord(r selector.Result) Record {
	return Record{
		Selector:  r.Hex(),
		Zeros:     r.Zeros,
		Leading:   r.Leading,
		Signature: r.Signature,
	}
}

func Records(rs []selector.Result) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = NewRecord(r)
	}
	return out
}
