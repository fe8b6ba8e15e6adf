package geo

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
)

// Layer describes one base-map shapefile
type Layer struct {
	Type FeatureType
	Base string // Base filename (without extension)
}

// BaseLayers are the Natural Earth layers drawn under the overlays
var BaseLayers = []Layer{
	{Type: FeatureBorder, Base: "ne_50m_admin_0_boundary_lines_land"},
	{Type: FeatureRiver, Base: "ne_50m_rivers_lake_centerlines"},
	{Type: FeatureCoastline, Base: "ne_50m_coastline"},
	{Type: FeatureCity, Base: "ne_50m_populated_places"},
}

// nameFields are tried in order when labelling point features
var nameFields = []string{"NAME", "NAMEASCII", "NAME_EN"}

// ShapefileLoader loads and parses ESRI shapefiles
type ShapefileLoader struct {
	dataDir string
	log     *slog.Logger
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string, log *slog.Logger) *ShapefileLoader {
	return &ShapefileLoader{dataDir: dataDir, log: log}
}

// LoadAll loads every base layer, organized by feature type.
// Missing files are skipped with a warning; the viewer works without a base map.
func (s *ShapefileLoader) LoadAll() map[FeatureType][]*Feature {
	features := make(map[FeatureType][]*Feature, len(BaseLayers))

	for _, layer := range BaseLayers {
		path := filepath.Join(s.dataDir, layer.Base+".shp")
		list, err := s.LoadShapefile(path, layer.Type)
		if err != nil {
			s.log.Warn("skipping base layer", "layer", layer.Type, "path", path, "error", err)
			continue
		}
		features[layer.Type] = list
	}

	s.log.Info("base map loaded",
		"borders", len(features[FeatureBorder]),
		"rivers", len(features[FeatureRiver]),
		"coastlines", len(features[FeatureCoastline]),
		"cities", len(features[FeatureCity]))

	return features
}

// LoadShapefile loads a shapefile and converts it to Feature objects.
// Polygons are reduced to their outline; points pick up a name attribute.
func (s *ShapefileLoader) LoadShapefile(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx := nameFieldIndex(shape.Fields())
	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		switch geom := p.(type) {
		case *shp.PolyLine:
			features = appendParts(features, ftype, geom.Points, geom.Parts)
		case *shp.Polygon:
			features = appendParts(features, ftype, geom.Points, geom.Parts)
		case *shp.Point:
			name := ""
			if nameIdx >= 0 {
				name = strings.TrimSpace(shape.ReadAttribute(n, nameIdx))
			}
			features = append(features, NewPointFeature(ftype, LatLon{Lat: geom.Y, Lon: geom.X}, name))
		}
	}

	return features, nil
}

// appendParts splits a multi-part shape into one line feature per part
func appendParts(features []*Feature, ftype FeatureType, points []shp.Point, parts []int32) []*Feature {
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if end-start < 2 {
			continue
		}

		line := make([]LatLon, 0, end-start)
		for _, pt := range points[start:end] {
			line = append(line, LatLon{Lat: pt.Y, Lon: pt.X})
		}
		features = append(features, NewLineFeature(ftype, line))
	}
	return features
}

func nameFieldIndex(fields []shp.Field) int {
	for _, want := range nameFields {
		for i, field := range fields {
			// Field names are fixed-size byte arrays padded with nulls
			if strings.TrimRight(string(field.Name[:]), "\x00 ") == want {
				return i
			}
		}
	}
	return -1
}
