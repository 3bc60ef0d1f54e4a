package objsave

import (
	"context"
	"log/slog"

	"github.com/pixil98/mudsave/internal/game"
)

// Sink receives the objects a Reconstructor rebuilds.
type Sink interface {
	// Equip places obj in slot, or somewhere safe if it cannot go there.
	// It reports whether obj ended up in the slot.
	Equip(ctx context.Context, obj *game.ObjectInstance, slot game.WearSlot) bool
	// Stow places obj at the top level: the inventory or the room floor.
	Stow(obj *game.ObjectInstance)
}

// Reconstructor rebuilds object trees from records fed to it in stream
// order. Contents wait in a per-depth row until the container that owns
// them arrives; anything never claimed is spilled to the sink.
type Reconstructor struct {
	protos Prototypes
	sink   Sink
	logger *slog.Logger

	rows  [MaxBagRows][]*game.ObjectInstance
	stats Stats
}

type ReconstructorOpt func(*Reconstructor)

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) ReconstructorOpt {
	return func(r *Reconstructor) {
		r.logger = l
	}
}

func NewReconstructor(protos Prototypes, sink Sink, opts ...ReconstructorOpt) *Reconstructor {
	r := &Reconstructor{
		protos: protos,
		sink:   sink,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rebuild feeds every record to a new Reconstructor and finishes it.
func Rebuild(ctx context.Context, recs []Record, protos Prototypes, sink Sink, opts ...ReconstructorOpt) Stats {
	r := NewReconstructor(protos, sink, opts...)
	for _, rec := range recs {
		r.Add(ctx, rec)
	}
	return r.Finish(ctx)
}

// Add processes the next record in the stream.
func (r *Reconstructor) Add(ctx context.Context, rec Record) {
	obj, found := Materialize(rec, r.protos)
	r.stats.Restored++
	if !found {
		r.stats.Placeholders++
		r.logger.WarnContext(ctx, "object prototype not found, using placeholder", "proto", rec.Prototype)
	}

	if rec.IsEquipped() {
		r.flush(ctx, 1)
		r.claim(ctx, obj, 0)

		slot := rec.Slot()
		if !slot.Valid() {
			r.logger.WarnContext(ctx, "invalid wear slot in save, carrying instead", "proto", rec.Prototype, "location", rec.Location)
			r.stats.Redirected++
			r.sink.Stow(obj)
			return
		}
		if !r.sink.Equip(ctx, obj, slot) {
			r.stats.Redirected++
		}
		return
	}

	depth := rec.Depth()
	if depth > MaxBagRows {
		r.logger.WarnContext(ctx, "object nested too deep, clamping", "proto", rec.Prototype, "depth", depth, "max", MaxBagRows)
		r.stats.Clamped++
		depth = MaxBagRows
	}

	r.flush(ctx, depth+1)
	if depth < MaxBagRows {
		r.claim(ctx, obj, depth)
	}

	if depth == 0 {
		r.sink.Stow(obj)
		return
	}
	r.rows[depth-1] = append(r.rows[depth-1], obj)
}

// Finish spills anything still waiting for a container, as happens when a
// stream is truncated, and returns the load statistics.
func (r *Reconstructor) Finish(ctx context.Context) Stats {
	r.flush(ctx, 0)
	return r.stats
}

// claim moves the pending contents in row into obj. If obj can no longer
// hold things (its type changed since the save) they are spilled.
func (r *Reconstructor) claim(ctx context.Context, obj *game.ObjectInstance, row int) {
	pending := r.rows[row]
	if len(pending) == 0 {
		return
	}
	r.rows[row] = nil

	if !obj.IsStorage() {
		r.logger.WarnContext(ctx, "contents saved in an object that is not a container, spilling", "proto", obj.Object.Id(), "count", len(pending))
		r.spill(pending)
		return
	}
	for _, c := range pending {
		obj.AddContent(c)
	}
}

// flush spills every row at index from and deeper, deepest first.
func (r *Reconstructor) flush(ctx context.Context, from int) {
	for j := MaxBagRows - 1; j >= from; j-- {
		if len(r.rows[j]) == 0 {
			continue
		}
		r.logger.WarnContext(ctx, "orphaned contents in save, spilling", "depth", j+1, "count", len(r.rows[j]))
		r.spill(r.rows[j])
		r.rows[j] = nil
	}
}

func (r *Reconstructor) spill(objs []*game.ObjectInstance) {
	for _, oi := range objs {
		r.stats.Spilled++
		r.sink.Stow(oi)
	}
}
