package radio

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// AzimuthFeatureCollection converts an azimuth table to a GeoJSON
// FeatureCollection for map-layer collaborators: one Point feature per
// sector at the sector's EP location, with the planned/actual bearings in
// the properties. Rows without an estimate carry the sentinel status and
// no actual-azimuth properties.
func AzimuthFeatureCollection(results []AzimuthResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		f := geojson.NewFeature(orb.Point{r.Longitude, r.Latitude})
		f.Properties = geojson.Properties{
			"site_id":         r.SiteID,
			"cell_id":         r.CellID,
			"carrier":         r.Carrier,
			"planned_azimuth": r.PlannedAzimuth,
			"status":          r.Status,
		}
		if r.Status == StatusOK {
			f.Properties["actual_azimuth"] = r.ActualAzimuth
			f.Properties["azimuth_difference"] = r.AzimuthDifference
		}
		fc.Append(f)
	}
	return fc
}

// CoordinateFeatureCollection converts an actual-coordinates table to a
// GeoJSON FeatureCollection: one Point per sector at the inferred site
// position. Sectors with no estimate are skipped; a zero-island in the
// Atlantic helps nobody.
func CoordinateFeatureCollection(results []CoordinateResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		if r.Status != StatusOK {
			continue
		}
		f := geojson.NewFeature(orb.Point{r.Longitude, r.Latitude})
		f.Properties = geojson.Properties{
			"site_id":      r.SiteID,
			"cell_id":      r.CellID,
			"carrier":      r.Carrier,
			"sample_count": r.SampleCount,
		}
		fc.Append(f)
	}
	return fc
}
