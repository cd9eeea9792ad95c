package output

import (
	"encoding/json"
	"encoding/xml"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

// JSON writes {"signature": ..., "count": n, "results": [...]}.
type JSON struct{}

func (JSON) Name() string { return "json" }
func (JSON) Ext() string  { return "json" }

type jsonDocument struct {
	Signature string   `json:"signature"`
	Count     int      `json:"count"`
	Results   []Record `json:"results"`
}

func (JSON) Encode(w io.Writer, signature string, rs []selector.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonDocument{Signature: signature, Count: len(rs), Results: Records(rs)})
}

// XML writes a <selectors signature="..."> document with one <result> element per result.
type XML struct{}

func (XML) Name() string { return "xml" }
func (XML) Ext() string  { return "xml" }

type xmlDocument struct {
	XMLName   xml.Name `xml:"selectors"`
	Signature string   `xml:"signature,attr"`
	Results   []Record `xml:"result"`
}

func (XML) Encode(w io.Writer, signature string, rs []selector.Result) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(xmlDocument{Signature: signature, Results: Records(rs)}); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// YAML writes the results as a list of mappings.
type YAML struct{}

func (YAML) Name() string { return "yaml" }
func (YAML) Ext() string  { return "yaml" }

func (YAML) Encode(w io.Writer, _ string, rs []selector.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(rs)); err != nil {
		return err
	}
	return enc.Close()
}
