package twincat

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// tcPlcObject is the root element of every unit file.
type tcPlcObject struct {
	XMLName xml.Name `xml:"TcPlcObject"`
	POU     *tcPOU   `xml:"POU"`
	DUT     *tcPOU   `xml:"DUT"`
	GVL     *tcPOU   `xml:"GVL"`
	Itf     *tcPOU   `xml:"Itf"`
}

type tcPOU struct {
	Name           string       `xml:"Name,attr"`
	Declaration    string       `xml:"Declaration"`
	Implementation tcImpl       `xml:"Implementation"`
	Methods        []tcPOU      `xml:"Method"`
	Actions        []tcPOU      `xml:"Action"`
	Properties     []tcProperty `xml:"Property"`
}

type tcImpl struct {
	ST string `xml:"ST"`
}

type tcProperty struct {
	Name        string `xml:"Name,attr"`
	Declaration string `xml:"Declaration"`
	Get         *tcPOU `xml:"Get"`
	Set         *tcPOU `xml:"Set"`
}

// newDecoder accepts the legacy single-byte encodings older TwinCAT
// versions write into the XML prolog.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(label) {
		case "windows-1252", "cp1252", "iso-8859-1", "latin1":
			return charmap.Windows1252.NewDecoder().Reader(input), nil
		case "iso-8859-15":
			return charmap.ISO8859_15.NewDecoder().Reader(input), nil
		}
		return nil, fmt.Errorf("unsupported XML encoding %q", label)
	}
	return dec
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := newDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// scanElements calls fn for every start element of the file at path.
func scanElements(path string, fn func(xml.StartElement)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := newDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(se)
		}
	}
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
