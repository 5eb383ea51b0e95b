package Export

import (
	"github.com/tkrajina/gpxgo/gpx"

	"MakeMyWay/Models"
)

// ToGPX serializes a generated route as a GPX 1.1 track so users can load
// it into a watch or phone app.
func ToGPX(route Models.CandidateRoute, name string) ([]byte, error) {
	if name == "" {
		name = "MakeMyWay route"
	}

	segment := gpx.GPXTrackSegment{}
	for _, p := range route.Points {
		segment.Points = append(segment.Points, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Lat,
				Longitude: p.Lng,
			},
		})
	}

	doc := &gpx.GPX{
		Creator: "MakeMyWay",
		Name:    name,
		Tracks: []gpx.GPXTrack{
			{
				Name:     name,
				Segments: []gpx.GPXTrackSegment{segment},
			},
		},
	}

	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}
