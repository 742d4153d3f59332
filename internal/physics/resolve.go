package physics

import "toybox/internal/geom"

const (
	// Restitution is fixed: every bounce is perfectly elastic.
	Restitution = 1.0
	// PushOut is added to the penetration depth when separating a body so the
	// next tick does not detect the same contact again.
	PushOut = 0.5
)

// Resolve applies a contact to the body and reports whether anything changed.
// Bodies already moving away from the surface (vel·n >= 0) are left untouched so a
// contact is never resolved twice.
func Resolve(b *Body, c Contact) bool {
	if b.Vel.Dot(c.Normal) >= 0 {
		return false
	}
	b.Vel = geom.Reflect(b.Vel, c.Normal).Mul(Restitution)
	b.Pos = b.Pos.Add(c.Normal.Mul(c.Depth + PushOut))
	return true
}
