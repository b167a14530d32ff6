package sam

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/log"
)

// ParseError reports a malformed record in sam.xml.
type ParseError struct {
	Element string // element kind, "jetway" or "dock"
	Name    string // record name if known
	Attr    string // offending attribute
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sam.xml %s %q: missing attribute %q", e.Element, e.Name, e.Attr)
	}
	return fmt.Sprintf("sam.xml %s %q: attribute %q: %v", e.Element, e.Name, e.Attr, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// xmlJetway mirrors one <jetway> element. Attributes stay strings so a
// missing one is distinguishable from a legitimate zero.
type xmlJetway struct {
	Name        string `xml:"name,attr"`
	Latitude    string `xml:"latitude,attr"`
	Longitude   string `xml:"longitude,attr"`
	Heading     string `xml:"heading,attr"`
	Height      string `xml:"height,attr"`
	CabinPos    string `xml:"cabinPos,attr"`
	MaxExtent   string `xml:"maxExtent,attr"`
	InitialRot1 string `xml:"initialRot1,attr"`
	InitialRot2 string `xml:"initialRot2,attr"`
}

// xmlDock mirrors one <dock> element.
type xmlDock struct {
	Latitude  string `xml:"latitude,attr"`
	Longitude string `xml:"longitude,attr"`
	Heading   string `xml:"heading,attr"`
}

// xmlScenery mirrors the sam.xml document root.
type xmlScenery struct {
	Jetways []xmlJetway `xml:"jetways>jetway"`
	Docks   []xmlDock   `xml:"docks>dock"`
}

// Load reads sam.xml from path. Jetways outside the height band or without
// a supported tunnel class are dropped with a warning.
func Load(path string, band Band, lg *log.Logger) ([]*Jetway, []*Dock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return Parse(f, band, lg)
}

// Parse decodes SAM definitions from r.
func Parse(r io.Reader, band Band, lg *log.Logger) ([]*Jetway, []*Dock, error) {
	var doc xmlScenery
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("sam.xml: %w", err)
	}

	var jetways []*Jetway
	for _, x := range doc.Jetways {
		jw, err := x.toJetway()
		if err != nil {
			return nil, nil, err
		}

		if jw.LengthCode < 0 {
			lg.Warnf("can't find XP12 tunnel for '%s' (cabin length %.1fm), skipping", jw.Name, jw.CabinLength)
			continue
		}
		if jw.Height < band.Min || jw.Height > band.Max {
			lg.Warnf("jetway '%s' height %.1fm outside XP12 range, skipping", jw.Name, jw.Height)
			continue
		}

		jetways = append(jetways, jw)
	}

	var docks []*Dock
	for _, x := range doc.Docks {
		d, err := x.toDock()
		if err != nil {
			return nil, nil, err
		}
		docks = append(docks, d)
	}

	return jetways, docks, nil
}

func (x xmlJetway) toJetway() (*Jetway, error) {
	if x.Name == "" {
		return nil, &ParseError{Element: "jetway", Attr: "name"}
	}

	jw := &Jetway{Name: x.Name}

	var err error
	if jw.Pos.Lat, err = attrFloat("jetway", x.Name, "latitude", x.Latitude); err != nil {
		return nil, err
	}
	if jw.Pos.Lon, err = attrFloat("jetway", x.Name, "longitude", x.Longitude); err != nil {
		return nil, err
	}
	if jw.Heading, err = attrFloat("jetway", x.Name, "heading", x.Heading); err != nil {
		return nil, err
	}
	if jw.Height, err = attrFloat("jetway", x.Name, "height", x.Height); err != nil {
		return nil, err
	}
	if jw.CabinLength, err = attrFloat("jetway", x.Name, "cabinPos", x.CabinPos); err != nil {
		return nil, err
	}
	if jw.MaxExtend, err = attrFloat("jetway", x.Name, "maxExtent", x.MaxExtent); err != nil {
		return nil, err
	}
	if jw.CabHeading, err = attrFloat("jetway", x.Name, "initialRot2", x.InitialRot2); err != nil {
		return nil, err
	}

	// An initialRot1 of exactly "0" is indistinguishable from unset in SAM
	// data; fall back to the base heading then.
	if x.InitialRot1 == "" {
		return nil, &ParseError{Element: "jetway", Name: x.Name, Attr: "initialRot1"}
	}
	if x.InitialRot1 == "0" {
		jw.JwHeading = jw.Heading
	} else {
		rot1, err := attrFloat("jetway", x.Name, "initialRot1", x.InitialRot1)
		if err != nil {
			return nil, err
		}
		jw.JwHeading = jw.Heading + rot1
	}

	jw.LengthCode = lengthCode(jw.CabinLength)
	return jw, nil
}

func (x xmlDock) toDock() (*Dock, error) {
	d := &Dock{}

	var err error
	if d.Pos.Lat, err = attrFloat("dock", "", "latitude", x.Latitude); err != nil {
		return nil, err
	}
	if d.Pos.Lon, err = attrFloat("dock", "", "longitude", x.Longitude); err != nil {
		return nil, err
	}

	hdg, err := attrFloat("dock", "", "heading", x.Heading)
	if err != nil {
		return nil, err
	}
	d.Heading = geo.NormalizeHeading(90 + hdg)

	return d, nil
}

func attrFloat(element, name, attr, raw string) (float64, error) {
	if raw == "" {
		return 0, &ParseError{Element: element, Name: name, Attr: attr}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ParseError{Element: element, Name: name, Attr: attr, Err: err}
	}
	return v, nil
}
