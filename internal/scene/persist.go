package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"toybox/internal/store"

	"github.com/google/uuid"
)

// SnapshotKey is the single blob the sandbox is saved under.
const SnapshotKey = "sandbox.scene"

// Save writes the current entities to st.
func (s *Scene) Save(ctx context.Context, st store.Store) error {
	data, err := Encode(s.Snapshot())
	if err != nil {
		return err
	}
	if err := st.Put(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("scene: save: %w", err)
	}
	return nil
}

// Load replaces the entities with the saved snapshot. A missing blob leaves the scene
// empty. A corrupt blob, or one holding an entity Launch or AddObstacle would refuse,
// is logged and discarded so a bad save never blocks startup; only store failures are
// returned.
func (s *Scene) Load(ctx context.Context, st store.Store, log *slog.Logger) error {
	data, err := st.Get(ctx, SnapshotKey)
	if errors.Is(err, store.ErrNotFound) {
		s.Clear()
		return nil
	}
	if err != nil {
		return fmt.Errorf("scene: load: %w", err)
	}
	snap, err := Decode(data)
	if err == nil {
		snap, err = s.admit(snap)
	}
	if err != nil {
		if log != nil {
			log.Warn("discarding saved scene", "key", SnapshotKey, "error", err)
		}
		s.Clear()
		return nil
	}
	if err := s.Restore(snap); err != nil {
		return fmt.Errorf("scene: load: %w", err)
	}
	if log != nil {
		bodies, obstacles := s.Len()
		log.Info("scene loaded", "bodies", bodies, "obstacles", obstacles)
	}
	return nil
}

// admit holds a decoded snapshot to the rules Launch and AddObstacle apply, and gives
// missing or repeated ids fresh ones so every entity stays addressable.
func (s *Scene) admit(snap Snapshot) (Snapshot, error) {
	seen := make(map[uuid.UUID]bool, len(snap.Bodies)+len(snap.Obstacles))
	unique := func(id uuid.UUID) uuid.UUID {
		for id == uuid.Nil || seen[id] {
			id = uuid.New()
		}
		seen[id] = true
		return id
	}
	for i := range snap.Bodies {
		b := &snap.Bodies[i]
		if err := s.checkBody(b.Pos, b.Vel, b.Radius); err != nil {
			return Snapshot{}, fmt.Errorf("scene: body %d: %w", i, err)
		}
		b.ID = unique(b.ID)
	}
	for i := range snap.Obstacles {
		o := &snap.Obstacles[i]
		if err := s.Validate(o.Shape); err != nil {
			return Snapshot{}, fmt.Errorf("scene: shape %d: %w", i, err)
		}
		o.ID = unique(o.ID)
	}
	return snap, nil
}
