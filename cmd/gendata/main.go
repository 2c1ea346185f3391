// Command gendata writes the demo Edmonton neighborhood dataset used for
// local runs and fixtures. Socioeconomic context values match the synthetic
// training data the demo model was built from; geometries are simplified
// placeholder squares around each neighborhood's approximate center.
//
// Usage:
//
//	go run ./cmd/gendata -out data/edmonton_neighborhoods.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type neighborhoodDef struct {
	name     string
	sesIndex float64
	infra    float64
	lon, lat float64
	adjacent []string
	aliases  []string
}

// Demo neighborhood table. Adjacency is a simplified planning-scale graph,
// not parcel-accurate polygon adjacency.
var neighborhoods = []neighborhoodDef{
	{"Downtown", 0.45, 0.70, -113.4938, 53.5461, []string{"Oliver", "Strathcona", "North Edmonton"}, nil},
	{"Oliver", 0.65, 0.75, -113.5200, 53.5420, []string{"Downtown", "West Edmonton", "Terwillegar"}, nil},
	{"Strathcona", 0.70, 0.80, -113.4870, 53.5190, []string{"Downtown", "Bonnie Doon", "Mill Woods", "Riverbend"}, nil},
	{"Bonnie Doon", 0.60, 0.70, -113.4560, 53.5230, []string{"Strathcona", "Mill Woods"}, nil},
	{"Mill Woods", 0.55, 0.65, -113.4260, 53.4570, []string{"Strathcona", "Bonnie Doon"}, nil},
	{"West Edmonton", 0.50, 0.60, -113.6220, 53.5220, []string{"Oliver", "Terwillegar", "Castle Downs"}, []string{"Jasper Place", "Glenora"}},
	{"North Edmonton", 0.40, 0.55, -113.4920, 53.6020, []string{"Downtown", "Castle Downs"}, []string{"Northgate", "Alberta Avenue"}},
	{"Riverbend", 0.75, 0.85, -113.5730, 53.4740, []string{"Strathcona", "Terwillegar"}, nil},
	{"Terwillegar", 0.80, 0.85, -113.6080, 53.4440, []string{"Oliver", "West Edmonton", "Riverbend"}, []string{"MacTaggart"}},
	{"Castle Downs", 0.58, 0.68, -113.5210, 53.6280, []string{"North Edmonton", "West Edmonton"}, []string{"Castledowns"}},
}

type geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

type properties struct {
	NeighborhoodName      string   `json:"neighborhood_name"`
	SESIndex              float64  `json:"ses_index"`
	InfrastructureQuality float64  `json:"infrastructure_quality"`
	Adjacent              []string `json:"adjacent_neighborhoods"`
	Aliases               []string `json:"aliases,omitempty"`
}

type feature struct {
	Type       string     `json:"type"`
	Geometry   geometry   `json:"geometry"`
	Properties properties `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the neighborhood dataset JSON")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	fc := featureCollection{Type: "FeatureCollection"}
	for _, n := range neighborhoods {
		fc.Features = append(fc.Features, feature{
			Type:     "Feature",
			Geometry: squareAround(n.lon, n.lat, 0.012),
			Properties: properties{
				NeighborhoodName:      n.name,
				SESIndex:              n.sesIndex,
				InfrastructureQuality: n.infra,
				Adjacent:              n.adjacent,
				Aliases:               n.aliases,
			},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	log.Printf("wrote %d neighborhoods to %s", len(fc.Features), *out)
	return nil
}

// squareAround builds a closed square polygon of the given half-size in
// degrees, a stand-in for the real neighborhood boundary.
func squareAround(lon, lat, half float64) geometry {
	return geometry{
		Type: "Polygon",
		Coordinates: [][][2]float64{{
			{lon - half, lat - half},
			{lon + half, lat - half},
			{lon + half, lat + half},
			{lon - half, lat + half},
			{lon - half, lat - half},
		}},
	}
}
