// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package models

// Coordinate is a GPS position as delivered by the live feeds:
// [longitude, latitude] with an optional third altitude component
// (meters MSL). The slice form matches the wire shape (GeoJSON
// ordering) so batches pass through without conversion.
type Coordinate []float64

// Valid reports whether the coordinate carries at least lon and lat.
func (c Coordinate) Valid() bool {
	return len(c) >= 2
}

// Lon returns the longitude component, or 0 for an invalid coordinate.
func (c Coordinate) Lon() float64 {
	if !c.Valid() {
		return 0
	}
	return c[0]
}

// Lat returns the latitude component, or 0 for an invalid coordinate.
func (c Coordinate) Lat() float64 {
	if !c.Valid() {
		return 0
	}
	return c[1]
}

// Alt returns the altitude component and whether one is present.
func (c Coordinate) Alt() (float64, bool) {
	if len(c) < 3 {
		return 0, false
	}
	return c[2], true
}

// LonLat returns a two-component copy, dropping altitude if present.
// Map renderers place markers from lon/lat only.
func (c Coordinate) LonLat() Coordinate {
	if !c.Valid() {
		return nil
	}
	return Coordinate{c[0], c[1]}
}

// Clone returns an independent copy of the coordinate.
func (c Coordinate) Clone() Coordinate {
	if c == nil {
		return nil
	}
	out := make(Coordinate, len(c))
	copy(out, c)
	return out
}
