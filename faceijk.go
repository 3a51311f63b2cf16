package h3geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	numIcosaFaces   = 20
	numBaseCells    = 122
	invalidBaseCell = 127
	maxFaceCoord    = 2

	// MaxResolution is the finest grid resolution.
	MaxResolution = 15

	// epsilon of ~0.1mm in radians
	epsilon = 1e-16

	sqrt3Over2 = 0.8660254037844386467637231707529361834714
	sqrt7      = 2.6457513110645905905016157536392604257102

	// rotation angle between Class II and Class III resolution axes,
	// asin(sqrt(3/28))
	ap7RotRads = 0.333473172251832115336090755351601070065900692136

	// scaling factor from hex2d resolution 0 unit length to gnomonic unit
	// length (aka res0UGnomonic == tan(~36.29 degrees))
	res0UGnomonic = 0.38196601125010500003
)

// faceIJK holds a position on a particular icosahedron face.
type faceIJK struct {
	face  int
	coord coordIJK
}

// faceOrientIJK describes how coordinates translate moving off one face onto
// an adjacent one: the new face, the resolution 0 translation on it, and the
// number of 60 degree counterclockwise rotations to apply.
type faceOrientIJK struct {
	face      int
	translate coordIJK
	ccwRot60  int
}

// baseCellData records a base cell's home face position and pentagon status.
// For pentagons, cwOffsetPent lists the two faces whose overlap carries a
// clockwise offset rotation.
type baseCellData struct {
	home         faceIJK
	isPentagon   bool
	cwOffsetPent [2]int
}

// baseCellOrient pairs a base cell with its counterclockwise rotation
// relative to the face it appears on.
type baseCellOrient struct {
	baseCell int
	ccwRot60 int
}

// Overage classification after moving coordinates beyond a face edge.
type overage int

const (
	noOverage overage = iota
	faceEdge
	newFace
)

// Quadrant indices into faceNeighbors rows.
const (
	centralFace = 0
	ijQuadrant  = 1
	kiQuadrant  = 2
	jkQuadrant  = 3
)

func isResolutionClassIII(res int) bool {
	return res%2 == 1
}

// posAngle normalizes an angle in radians to [0, 2pi).
func posAngle(a float64) float64 {
	t := math.Mod(a, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return t
}

func constrainLng(lng float64) float64 {
	for lng > math.Pi {
		lng -= 2 * math.Pi
	}
	for lng < -math.Pi {
		lng += 2 * math.Pi
	}
	return lng
}

// azimuth computes the bearing in radians from p1 to p2.
func azimuth(p1, p2 s2.LatLng) float64 {
	lat1, lng1 := p1.Lat.Radians(), p1.Lng.Radians()
	lat2, lng2 := p2.Lat.Radians(), p2.Lng.Radians()
	return math.Atan2(
		math.Cos(lat2)*math.Sin(lng2-lng1),
		math.Cos(lat1)*math.Sin(lat2)-math.Sin(lat1)*math.Cos(lat2)*math.Cos(lng2-lng1))
}

// azDistancePoint computes the point at the given azimuth and great circle
// distance in radians from p1.
func azDistancePoint(p1 s2.LatLng, az, distance float64) s2.LatLng {
	if distance < epsilon {
		return p1
	}
	lat1, lng1 := p1.Lat.Radians(), p1.Lng.Radians()
	az = posAngle(az)

	// due north or south
	if az < epsilon || math.Abs(az-math.Pi) < epsilon {
		lat := lat1 - distance
		if az < epsilon {
			lat = lat1 + distance
		}
		if math.Abs(lat-math.Pi/2) < epsilon {
			return s2.LatLng{Lat: math.Pi / 2, Lng: 0}
		}
		if math.Abs(lat+math.Pi/2) < epsilon {
			return s2.LatLng{Lat: -math.Pi / 2, Lng: 0}
		}
		return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(constrainLng(lng1))}
	}

	sinLat := math.Sin(lat1)*math.Cos(distance) + math.Cos(lat1)*math.Sin(distance)*math.Cos(az)
	sinLat = clamp(sinLat, -1, 1)
	lat := math.Asin(sinLat)
	if math.Abs(lat-math.Pi/2) < epsilon {
		return s2.LatLng{Lat: math.Pi / 2, Lng: 0}
	}
	if math.Abs(lat+math.Pi/2) < epsilon {
		return s2.LatLng{Lat: -math.Pi / 2, Lng: 0}
	}
	sinLng := clamp(math.Sin(az)*math.Sin(distance)/math.Cos(lat), -1, 1)
	cosLng := clamp((math.Cos(distance)-math.Sin(lat1)*sinLat)/(math.Cos(lat1)*math.Cos(lat)), -1, 1)
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(constrainLng(lng1 + math.Atan2(sinLng, cosLng)))}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// geoToHex2d finds the icosahedron face containing the point and projects it
// gnomonically onto orthogonal face-plane coordinates scaled for the given
// resolution.
func geoToHex2d(ll s2.LatLng, res int) (int, r2.Point) {
	v3d := s2.PointFromLatLng(ll)

	face := 0
	sqd := faceCenterPoint[0].Sub(v3d.Vector).Norm2()
	for f := 1; f < numIcosaFaces; f++ {
		if d := faceCenterPoint[f].Sub(v3d.Vector).Norm2(); d < sqd {
			face, sqd = f, d
		}
	}

	// cos(r) = 1 - 2 sin^2(r/2) = 1 - 2 (sqd/4) = 1 - sqd/2
	r := math.Acos(1 - sqd/2)
	if r < epsilon {
		return face, r2.Point{}
	}

	theta := posAngle(faceAxesAzRadsCII[face] - posAngle(azimuth(faceCenterGeo[face], ll)))
	if isResolutionClassIII(res) {
		theta = posAngle(theta - ap7RotRads)
	}

	// gnomonic scaling and multiplication by aperture per resolution step
	r = math.Tan(r) / res0UGnomonic
	for i := 0; i < res; i++ {
		r *= sqrt7
	}
	return face, r2.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func geoToFaceIJK(ll s2.LatLng, res int) faceIJK {
	face, v := geoToHex2d(ll, res)
	return faceIJK{face: face, coord: hex2dToIJK(v)}
}

// hex2dToGeo inverts the gnomonic projection from face-plane coordinates
// back to a spherical point. Substrate grids carry an additional aperture 3
// (and on Class III resolutions aperture 7) subdivision.
func hex2dToGeo(v r2.Point, face, res int, substrate bool) s2.LatLng {
	r := math.Hypot(v.X, v.Y)
	if r < epsilon {
		return faceCenterGeo[face]
	}
	theta := math.Atan2(v.Y, v.X)

	for i := 0; i < res; i++ {
		r /= sqrt7
	}
	if substrate {
		r /= 3.0
		if isResolutionClassIII(res) {
			r /= sqrt7
		}
	}
	r = math.Atan(r * res0UGnomonic)

	if !substrate && isResolutionClassIII(res) {
		theta = posAngle(theta + ap7RotRads)
	}
	theta = posAngle(faceAxesAzRadsCII[face] - theta)
	return azDistancePoint(faceCenterGeo[face], theta, r)
}

func (f faceIJK) toGeo(res int) s2.LatLng {
	return hex2dToGeo(f.coord.hex2d(), f.face, res, false)
}

// adjustOverageClassII folds coordinates that have overflowed past the edge
// of a face onto the adjacent face, for a Class II resolution grid.
// pentLeading4 requests the extra clockwise distortion rotation a pentagon
// with a leading 4 digit needs in the KI quadrant.
func (f faceIJK) adjustOverageClassII(res int, pentLeading4, substrate bool) (overage, faceIJK) {
	maxDim := maxDimByCIIres[res]
	if substrate {
		maxDim *= 3
	}

	s := f.coord.sum()
	if substrate && s == maxDim {
		return faceEdge, f
	}
	if s <= maxDim {
		return noOverage, f
	}

	var orient faceOrientIJK
	switch {
	case f.coord.k > 0 && f.coord.j > 0:
		orient = faceNeighbors[f.face][jkQuadrant]
	case f.coord.k > 0:
		orient = faceNeighbors[f.face][kiQuadrant]
		if pentLeading4 {
			// undo the distortion rotation about the i axis vertex
			origin := coordIJK{i: maxDim}
			f.coord = f.coord.sub(origin).rotate60cw().add(origin)
		}
	default:
		orient = faceNeighbors[f.face][ijQuadrant]
	}

	f.face = orient.face
	for i := 0; i < orient.ccwRot60; i++ {
		f.coord = f.coord.rotate60ccw()
	}

	unitScale := unitScaleByCIIres[res]
	if substrate {
		unitScale *= 3
	}
	f.coord = f.coord.add(orient.translate.scale(unitScale)).normalize()

	ov := newFace
	if substrate && f.coord.sum() == maxDim {
		ov = faceEdge
	}
	return ov, f
}

// adjustPentVertOverage keeps folding a substrate pentagon vertex until it no
// longer overflows its face.
func (f faceIJK) adjustPentVertOverage(res int) faceIJK {
	ov := newFace
	for ov == newFace {
		ov, f = f.adjustOverageClassII(res, false, true)
	}
	return f
}

// faceCenterPoint caches the unit 3-vectors of the face centers.
var faceCenterPoint = func() [numIcosaFaces]s2.Point {
	var p [numIcosaFaces]s2.Point
	for f, ll := range faceCenterGeo {
		p[f] = s2.PointFromLatLng(ll)
	}
	return p
}()
