// Package geo provides great-circle calculations on latitude/longitude pairs.
//
// All functions are pure. Distances are expressed in statute miles and angles
// in degrees, matching the units used by the city data the rest of cityforest
// consumes.
//
// # Distance
//
// [Distance] uses the haversine formula on a spherical Earth of radius
// [EarthRadiusMiles]. It is symmetric and returns exactly zero for identical
// coordinates:
//
//	d := geo.Distance(geo.Coord{Lat: 33.9, Lon: -98.5}, geo.Coord{Lat: 32.7, Lon: -97.3})
//
// # Bearing and Destination
//
// [Bearing] and [Destination] are used for display-only transformations such
// as pushing vertices away from the center of a drawing ([graph.Graph.Expand]).
//
// # Bounding Box
//
// [Box] accumulates every coordinate added to it and tracks the extremes and
// the mean point. [Project] maps a coordinate to planar Mercator units for
// renderers that want x/y positions.
package geo
