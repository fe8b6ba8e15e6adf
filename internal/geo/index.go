package geo

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// minExtent keeps point features and axis-aligned lines indexable;
// rtreego rejects rectangles with a zero side.
const minExtent = 1e-9

// FeatureIndex answers "which base-map features touch this box" queries
// with an R-tree, so rendering only walks what is on screen.
type FeatureIndex struct {
	tree  *rtreego.Rtree
	count int
}

type indexedFeature struct {
	feature *Feature
	rect    rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (f *indexedFeature) Bounds() rtreego.Rect {
	return f.rect
}

// NewFeatureIndex builds an index over all features of all types
func NewFeatureIndex(features map[FeatureType][]*Feature) *FeatureIndex {
	idx := &FeatureIndex{tree: rtreego.NewTree(2, 25, 50)}

	for _, list := range features {
		for _, f := range list {
			if !f.IsPoint() && !f.IsLine() {
				continue
			}
			idx.tree.Insert(&indexedFeature{feature: f, rect: toRect(f.Extent())})
			idx.count++
		}
	}

	return idx
}

// Len returns the number of indexed features
func (idx *FeatureIndex) Len() int {
	return idx.count
}

// Query returns the features of type ftype whose extent intersects box
func (idx *FeatureIndex) Query(box BoundingBox, ftype FeatureType) []*Feature {
	matches := idx.tree.SearchIntersect(toRect(box), func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		return obj.(*indexedFeature).feature.Type != ftype, false
	})

	result := make([]*Feature, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.(*indexedFeature).feature)
	}
	return result
}

func toRect(box BoundingBox) rtreego.Rect {
	point := rtreego.Point{box.SouthWest.Lon, box.SouthWest.Lat}
	lengths := []float64{
		math.Max(box.NorthEast.Lon-box.SouthWest.Lon, minExtent),
		math.Max(box.NorthEast.Lat-box.SouthWest.Lat, minExtent),
	}

	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}
