package vecmath

import "testing"

const tolerance = 1e-9

func closeVec(a, b Vec3) bool {
	return a.Sub(b).Length() < tolerance
}

func TestVec3_Add(t *testing.T) {
	got := NewVec3(1, 2, 3).Add(NewVec3(4, 5, 6))
	want := NewVec3(5, 7, 9)
	if !closeVec(got, want) {
		t.Errorf("Add: got %v, want %v", got, want)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"unit x", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"zero vector", Vec3{}, Vec3{}},
		{"diagonal", NewVec3(1, 1, 0), NewVec3(0.7071067811865475, 0.7071067811865475, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !closeVec(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	// incident ray going straight down onto a flat, up-facing surface
	// reflects straight back up.
	incident := NewVec3(0, -1, 0)
	normal := NewVec3(0, 1, 0)
	got := incident.Reflect(normal)
	want := NewVec3(0, 1, 0)
	if !closeVec(got, want) {
		t.Errorf("Reflect = %v, want %v", got, want)
	}
}

func TestVec3_Cross(t *testing.T) {
	got := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0))
	want := NewVec3(0, 0, 1)
	if !closeVec(got, want) {
		t.Errorf("Cross = %v, want %v", got, want)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	for _, dir := range []Vec3{NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(1, 1, 1)} {
		u, v, w := OrthonormalBasis(dir)
		if got := u.Dot(v); got > tolerance || got < -tolerance {
			t.Errorf("u.v = %v, want 0", got)
		}
		if got := u.Dot(w); got > tolerance || got < -tolerance {
			t.Errorf("u.w = %v, want 0", got)
		}
		if got := v.Dot(w); got > tolerance || got < -tolerance {
			t.Errorf("v.w = %v, want 0", got)
		}
		if got := u.Length(); got < 1-tolerance || got > 1+tolerance {
			t.Errorf("|u| = %v, want 1", got)
		}
	}
}
