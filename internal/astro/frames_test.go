package astro

import (
	"math"
	"testing"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Ops(t *testing.T) {
	a, b := Vec3{1, 2, 3}, Vec3{4, 5, 6}
	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("zero Normalized = %v", got)
	}
	if n := (Vec3{3, 0, 4}).Normalized().Norm(); math.Abs(n-1) > 1e-12 {
		t.Errorf("Normalized norm = %v", n)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 45 {
		for _, lat := range []float64{-60, -15, 0, 30, 75} {
			v := SphericalToVec(FromDegrees(lon), FromDegrees(lat))
			gotLon, gotLat := VecToSpherical(v.Scale(3.5))
			if angleDiff(gotLon.Degrees(), lon) > 1e-9 || math.Abs(gotLat.Degrees()-lat) > 1e-9 {
				t.Errorf("(%v, %v) came back as (%v, %v)", lon, lat, gotLon.Degrees(), gotLat.Degrees())
			}
		}
	}
}

func TestEclipticEquatorial(t *testing.T) {
	// The ecliptic north pole has dec = 90° − ε
	pole := EclipticToEquatorial(Vec3{0, 0, 1})
	_, dec := VecToSpherical(pole)
	if math.Abs(dec.Degrees()-(90-ObliquityJ2000)) > 1e-9 {
		t.Errorf("ecliptic pole dec = %v", dec.Degrees())
	}

	v := Vec3{0.3, -1.2, 0.7}
	back := EquatorialToEcliptic(EclipticToEquatorial(v))
	if back.Sub(v).Norm() > 1e-12 {
		t.Errorf("round trip = %v, want %v", back, v)
	}

	// Summer solstice point: λ = 90°, β = 0 → α = 6h, δ = +ε
	c := EclipticToICRS(FromDegrees(90), FromDegrees(0), ObliquityJ2000)
	if math.Abs(c.RA.Degrees()-90) > 1e-9 || math.Abs(c.Dec.Degrees()-ObliquityJ2000) > 1e-9 {
		t.Errorf("solstice = %v", c)
	}
}

func TestDistanceUnits(t *testing.T) {
	if got := KmToAU(AU); got != 1 {
		t.Errorf("KmToAU(AU) = %v", got)
	}
	if got := AUToKm(2); got != 2*AU {
		t.Errorf("AUToKm(2) = %v", got)
	}
	if got := LightTime(1); math.Abs(got-499.004784) > 1e-5 {
		t.Errorf("LightTime(1 AU) = %v s", got)
	}
}

func TestMeanObliquity(t *testing.T) {
	if got := MeanObliquity(NewJulianDate(J2000)); math.Abs(got-23.439291) > 1e-9 {
		t.Errorf("ε at J2000 = %v", got)
	}
	if MeanObliquity(NewJulianDate(J2000+36525)) >= MeanObliquity(NewJulianDate(J2000)) {
		t.Error("obliquity should be decreasing")
	}
}
