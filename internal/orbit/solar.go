package orbit

// SunSize is the render radius of the central star at the focus.
const SunSize = 4

// SunColor is the render colour of the central star.
const SunColor = "#fdb813"

type planetDef struct {
	name         string
	distance     float64
	eccentricity float64
	speed        float64
	size         float64
	color        string
}

// Distances and sizes are compressed for display; eccentricities are the real values and
// speeds keep the real period ratios with the Earth at 0.5 rad/s.
var planets = []planetDef{
	{"Mercury", 10, 0.2056, 2.075, 0.4, "#b1adad"},
	{"Venus", 15, 0.0068, 0.813, 0.9, "#e3bb76"},
	{"Earth", 20, 0.0167, 0.5, 1.0, "#2f6ad0"},
	{"Mars", 26, 0.0934, 0.266, 0.55, "#c1440e"},
	{"Jupiter", 40, 0.0489, 0.0422, 3.0, "#d8ca9d"},
	{"Saturn", 55, 0.0565, 0.0170, 2.6, "#e3e0c0"},
	{"Uranus", 70, 0.0457, 0.0060, 1.8, "#9fc4c7"},
	{"Neptune", 85, 0.0113, 0.0030, 1.7, "#4b70dd"},
}

// SolarSystem returns the eight planets plus the Moon around the Earth. Starting angles
// are staggered so the planets do not line up on the first frame.
func SolarSystem() *System {
	bodies := make([]*Body, 0, len(planets)+1)
	var earth *Body
	for i, p := range planets {
		b := NewBody(p.name, p.distance, p.eccentricity, p.speed)
		b.Size = p.size
		b.Color = p.color
		b.Angle = float64(i) * 0.7
		if p.name == "Earth" {
			earth = b
		}
		bodies = append(bodies, b)
	}

	moon := NewBody("Moon", 2.2, 0.0549, 6.7)
	moon.Size = 0.27
	moon.Color = "#cfcfcf"
	moon.Parent = earth
	bodies = append(bodies, moon)

	return NewSystem(bodies...)
}
