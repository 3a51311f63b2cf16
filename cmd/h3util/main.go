// Command h3util exposes grid indexing operations on the command line.
//
// Usage:
//
//	h3util point-to-index -lat 37.3615593 -lng -122.0553238 -res 7
//	h3util index-to-centroid -index 87283472bffffff
//	h3util index-to-boundary -index 87283472bffffff -format geojson
//	h3util index-to-kring -index 87283472bffffff -k 2
//	h3util index-to-hex-ring -index 87283472bffffff -k 2
//	h3util index-to-components -index 87283472bffffff
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang/geo/s2"
	h3geo "github.com/mookerji/h3-geo"
)

type geoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	Geometry   geoJSONGeometry   `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: h3util <command> [flags]

commands:
  point-to-index       -lat <deg> -lng <deg> -res <0..15>
  index-to-centroid    -index <hex> [-format text|geojson]
  index-to-boundary    -index <hex> [-format text|geojson]
  index-to-kring       -index <hex> -k <n>
  index-to-hex-ring    -index <hex> -k <n>
  index-to-components  -index <hex>`)
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("h3util: ")
	if len(os.Args) < 2 {
		usage()
	}

	var err error
	switch os.Args[1] {
	case "point-to-index":
		err = pointToIndex(os.Args[2:])
	case "index-to-centroid":
		err = indexToCentroid(os.Args[2:])
	case "index-to-boundary":
		err = indexToBoundary(os.Args[2:])
	case "index-to-kring":
		err = indexToKRing(os.Args[2:])
	case "index-to-hex-ring":
		err = indexToHexRing(os.Args[2:])
	case "index-to-components":
		err = indexToComponents(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func parseIndex(fs *flag.FlagSet, args []string) (h3geo.Cell, error) {
	index := fs.String("index", "", "cell identifier in hexadecimal")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	return h3geo.CellFromString(*index)
}

func pointToIndex(args []string) error {
	fs := flag.NewFlagSet("point-to-index", flag.ExitOnError)
	lat := fs.Float64("lat", 0, "latitude in degrees")
	lng := fs.Float64("lng", 0, "longitude in degrees")
	res := fs.Int("res", 0, "grid resolution (0..15)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := h3geo.Encode(s2.LatLngFromDegrees(*lat, *lng), *res)
	if err != nil {
		return err
	}
	fmt.Println(c)
	return nil
}

func indexToCentroid(args []string) error {
	fs := flag.NewFlagSet("index-to-centroid", flag.ExitOnError)
	format := fs.String("format", "text", "output format: text or geojson")
	c, err := parseIndex(fs, args)
	if err != nil {
		return err
	}
	ll := c.LatLng()
	if *format == "geojson" {
		return printGeoJSON([]geoJSONFeature{{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{ll.Lng.Degrees(), ll.Lat.Degrees()},
			},
			Properties: map[string]string{"index": c.String()},
		}})
	}
	fmt.Printf("%.9f %.9f\n", ll.Lat.Degrees(), ll.Lng.Degrees())
	return nil
}

func indexToBoundary(args []string) error {
	fs := flag.NewFlagSet("index-to-boundary", flag.ExitOnError)
	format := fs.String("format", "text", "output format: text or geojson")
	c, err := parseIndex(fs, args)
	if err != nil {
		return err
	}
	boundary := c.Boundary()
	if *format == "geojson" {
		ring := make([][]float64, 0, len(boundary)+1)
		for _, v := range boundary {
			ring = append(ring, []float64{v.Lng.Degrees(), v.Lat.Degrees()})
		}
		ring = append(ring, ring[0])
		return printGeoJSON([]geoJSONFeature{{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Polygon",
				Coordinates: [][][]float64{ring},
			},
			Properties: map[string]string{"index": c.String()},
		}})
	}
	for _, v := range boundary {
		fmt.Printf("%.9f %.9f\n", v.Lat.Degrees(), v.Lng.Degrees())
	}
	return nil
}

func indexToKRing(args []string) error {
	fs := flag.NewFlagSet("index-to-kring", flag.ExitOnError)
	k := fs.Int("k", 1, "ring radius")
	c, err := parseIndex(fs, args)
	if err != nil {
		return err
	}
	for cell, dist := range h3geo.KRingWithDistances(c, *k) {
		fmt.Printf("%s %d\n", cell, dist)
	}
	return nil
}

func indexToHexRing(args []string) error {
	fs := flag.NewFlagSet("index-to-hex-ring", flag.ExitOnError)
	k := fs.Int("k", 1, "ring radius")
	c, err := parseIndex(fs, args)
	if err != nil {
		return err
	}
	ring, err := h3geo.HexRing(c, *k)
	if err != nil {
		return err
	}
	for _, cell := range ring {
		fmt.Println(cell)
	}
	return nil
}

func indexToComponents(args []string) error {
	fs := flag.NewFlagSet("index-to-components", flag.ExitOnError)
	c, err := parseIndex(fs, args)
	if err != nil {
		return err
	}
	fmt.Printf("index:      %s\n", c)
	fmt.Printf("resolution: %d\n", c.Resolution())
	fmt.Printf("base cell:  %d\n", c.BaseCell())
	fmt.Printf("pentagon:   %t\n", c.IsPentagon())
	fmt.Printf("class III:  %t\n", c.IsResolutionClassIII())
	fmt.Printf("faces:      %v\n", c.IcosahedronFaces())
	return nil
}

func printGeoJSON(features []geoJSONFeature) error {
	out, err := json.MarshalIndent(geoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
