// Package geodesy holds the error kinds shared by the geodesy packages.
//
// The computation lives in the sub-packages:
//
//	dms          degree/minute/second parsing, formatting and wrapping
//	vector3d     3-d vector algebra
//	ellipsoidal  ellipsoids, geodetic points and ECEF cartesians
//	datum        seven-parameter datum transforms
//	refframe     fourteen-parameter reference frame transforms
//	vincenty     geodesics on the ellipsoid
//	spherical    great circle and rhumb line formulary
//	nvector      n-vector algorithms on the sphere
//	ned          n-vector and north/east/down deltas on the ellipsoid
//	osgrid       Ordnance Survey National Grid references
//	utm          Universal Transverse Mercator coordinates
package geodesy
