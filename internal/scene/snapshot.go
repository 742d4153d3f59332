package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"toybox/internal/physics"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// SnapshotVersion is the only blob layout Decode accepts.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned for blobs written by an unknown layout.
var ErrSnapshotVersion = errors.New("scene: unsupported snapshot version")

type snapshotDoc struct {
	Version int           `json:"version"`
	Bodies  []bodyRecord  `json:"bodies"`
	Shapes  []shapeRecord `json:"shapes"`
}

type bodyRecord struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"r"`
	Color  string  `json:"color,omitempty"`
}

// shapeRecord is a flat union; which fields are set depends on Kind.
type shapeRecord struct {
	ID     string       `json:"id"`
	Kind   string       `json:"kind"`
	Color  string       `json:"color,omitempty"`
	X1     float64      `json:"x1,omitempty"`
	Y1     float64      `json:"y1,omitempty"`
	X2     float64      `json:"x2,omitempty"`
	Y2     float64      `json:"y2,omitempty"`
	X      float64      `json:"x,omitempty"`
	Y      float64      `json:"y,omitempty"`
	W      float64      `json:"w,omitempty"`
	H      float64      `json:"h,omitempty"`
	R      float64      `json:"r,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
}

// Encode serialises snap as versioned JSON.
func Encode(snap Snapshot) ([]byte, error) {
	doc := snapshotDoc{
		Version: SnapshotVersion,
		Bodies:  make([]bodyRecord, 0, len(snap.Bodies)),
		Shapes:  make([]shapeRecord, 0, len(snap.Obstacles)),
	}
	for _, b := range snap.Bodies {
		doc.Bodies = append(doc.Bodies, bodyRecord{
			ID: b.ID.String(), X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y,
			Radius: b.Radius, Color: b.Color,
		})
	}
	for _, o := range snap.Obstacles {
		rec, err := encodeShape(o)
		if err != nil {
			return nil, err
		}
		doc.Shapes = append(doc.Shapes, rec)
	}
	return json.Marshal(doc)
}

func encodeShape(o physics.Obstacle) (shapeRecord, error) {
	rec := shapeRecord{ID: o.ID.String(), Color: o.Color}
	switch s := o.Shape.(type) {
	case physics.Segment:
		rec.X1, rec.Y1, rec.X2, rec.Y2 = s.A.X, s.A.Y, s.B.X, s.B.Y
	case physics.Rect:
		rec.X, rec.Y, rec.W, rec.H = s.X, s.Y, s.W, s.H
	case physics.Circle:
		rec.X, rec.Y, rec.R = s.Center.X, s.Center.Y, s.R
	case physics.Triangle:
		rec.Points = [][2]float64{{s.A.X, s.A.Y}, {s.B.X, s.B.Y}, {s.C.X, s.C.Y}}
	default:
		return rec, fmt.Errorf("scene: cannot encode shape %T", o.Shape)
	}
	rec.Kind = o.Shape.Kind().String()
	return rec, nil
}

// Decode parses a blob produced by Encode. Records with a missing or malformed id get
// a fresh one; anything else malformed fails the whole blob.
func Decode(data []byte) (Snapshot, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("scene: decode snapshot: %w", err)
	}
	if doc.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, doc.Version)
	}
	snap := Snapshot{
		Bodies:    make([]physics.Body, 0, len(doc.Bodies)),
		Obstacles: make([]physics.Obstacle, 0, len(doc.Shapes)),
	}
	for _, rec := range doc.Bodies {
		b := physics.NewBody(r2.Point{X: rec.X, Y: rec.Y}, r2.Point{X: rec.VX, Y: rec.VY}, rec.Radius, rec.Color)
		b.ID = parseID(rec.ID)
		snap.Bodies = append(snap.Bodies, *b)
	}
	for i, rec := range doc.Shapes {
		shape, err := decodeShape(rec)
		if err != nil {
			return Snapshot{}, fmt.Errorf("scene: shape %d: %w", i, err)
		}
		snap.Obstacles = append(snap.Obstacles, physics.Obstacle{ID: parseID(rec.ID), Shape: shape, Color: rec.Color})
	}
	return snap, nil
}

func decodeShape(rec shapeRecord) (physics.Shape, error) {
	kind, ok := physics.ParseKind(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", rec.Kind)
	}
	switch kind {
	case physics.KindSegment:
		return physics.Segment{A: r2.Point{X: rec.X1, Y: rec.Y1}, B: r2.Point{X: rec.X2, Y: rec.Y2}}, nil
	case physics.KindRect:
		return physics.Rect{X: rec.X, Y: rec.Y, W: rec.W, H: rec.H}, nil
	case physics.KindCircle:
		return physics.Circle{Center: r2.Point{X: rec.X, Y: rec.Y}, R: rec.R}, nil
	default:
		if len(rec.Points) != 3 {
			return nil, fmt.Errorf("triangle needs 3 points, got %d", len(rec.Points))
		}
		p := rec.Points
		return physics.Triangle{
			A: r2.Point{X: p[0][0], Y: p[0][1]},
			B: r2.Point{X: p[1][0], Y: p[1][1]},
			C: r2.Point{X: p[2][0], Y: p[2][1]},
		}, nil
	}
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.New()
	}
	return id
}
