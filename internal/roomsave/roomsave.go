// Package roomsave snapshots the mobiles and objects in rooms to one file
// per zone and restores them.
//
// Saving a room rewrites its zone file with the room's old block removed
// and the new one appended. Two processes saving the same zone race, and
// the last writer wins.
package roomsave

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/metrics"
	"github.com/pixil98/mudsave/internal/objsave"
	"github.com/pixil98/mudsave/internal/objsave/linefmt"
	"github.com/pixil98/mudsave/internal/storage"
)

const (
	fileExt          = ".rooms"
	DefaultCacheSize = 32
)

var ErrNoZone = errors.New("room has no zone")

// Mobiles looks up mobile definitions. storage.Storer[*game.Mobile]
// satisfies it.
type Mobiles interface {
	Get(string) *game.Mobile
}

// Result summarises a load.
type Result struct {
	// Rooms is the number of rooms restored.
	Rooms int
	Mobs  int
	Stats objsave.Stats
}

func (r *Result) add(o Result) {
	r.Rooms += o.Rooms
	r.Mobs += o.Mobs
	r.Stats.Add(o.Stats)
}

// Service reads and writes zone snapshot files. Recently used zone files
// are kept in memory.
type Service struct {
	dir     string
	protos  objsave.Prototypes
	mobiles Mobiles
	metrics *metrics.Recorder
	now     func() time.Time

	cacheSize int
	mu        sync.Mutex
	cache     *lru.Cache[string, []byte]
}

type ServiceOpt func(*Service)

// WithCacheSize sets how many zone files are kept in memory.
func WithCacheSize(n int) ServiceOpt {
	return func(s *Service) {
		s.cacheSize = n
	}
}

func WithMetrics(m *metrics.Recorder) ServiceOpt {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) ServiceOpt {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(dir string, protos objsave.Prototypes, mobiles Mobiles, opts ...ServiceOpt) (*Service, error) {
	s := &Service{
		dir:       dir,
		protos:    protos,
		mobiles:   mobiles,
		now:       time.Now,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.New[string, []byte](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating zone file cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

func (s *Service) path(zoneId string) (string, error) {
	if !storage.ValidIdentifier(zoneId) {
		return "", fmt.Errorf("invalid zone id %q", zoneId)
	}
	return filepath.Join(s.dir, zoneId+fileExt), nil
}

// read returns the zone file, or nil if there is none. Callers hold mu.
func (s *Service) read(zoneId string) ([]byte, error) {
	if data, ok := s.cache.Get(zoneId); ok {
		return data, nil
	}
	path, err := s.path(zoneId)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading zone file: %w", err)
	}
	s.cache.Add(zoneId, data)
	return data, nil
}

// write replaces the zone file. Callers hold mu.
func (s *Service) write(zoneId string, data []byte) error {
	path, err := s.path(zoneId)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := storage.WriteFileAtomic(path, data, 0644); err != nil {
		s.cache.Remove(zoneId)
		return fmt.Errorf("writing zone file: %w", err)
	}
	s.cache.Add(zoneId, data)
	return nil
}

// Snapshot captures everything in ri.
func (s *Service) Snapshot(ri *game.RoomInstance) *linefmt.Block {
	b := &linefmt.Block{
		RoomId:    ri.Room.Id(),
		Timestamp: s.now().Unix(),
		Objects:   objsave.FlattenList(ri.Objects(), 0),
	}
	for _, mi := range ri.Mobiles() {
		b.Mobs = append(b.Mobs, linefmt.Mob{
			Id:      mi.Mobile.Id(),
			Records: objsave.FlattenGear(&mi.ActorInstance),
		})
	}
	return b
}

// SaveRoom replaces the room's block in its zone file.
func (s *Service) SaveRoom(ctx context.Context, ri *game.RoomInstance) (err error) {
	defer func() {
		s.metrics.Save(metrics.KindRoom, "snapshot", err)
	}()

	zoneId := ri.ZoneId()
	if zoneId == "" {
		return fmt.Errorf("%w: %s", ErrNoZone, ri.Room.Id())
	}
	block := s.Snapshot(ri)

	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.read(zoneId)
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(linefmt.Excise(old, block.RoomId))
	if err := linefmt.WriteBlock(buf, block); err != nil {
		return fmt.Errorf("encoding room %s: %w", block.RoomId, err)
	}
	if err := s.write(zoneId, buf.Bytes()); err != nil {
		return fmt.Errorf("saving room %s: %w", block.RoomId, err)
	}

	slog.DebugContext(ctx, "room saved", "roomId", block.RoomId, "zoneId", zoneId, "mobs", len(block.Mobs), "objects", len(block.Objects))
	return nil
}

// DeleteRoom removes a room's block from its zone file.
func (s *Service) DeleteRoom(ctx context.Context, zoneId, roomId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.read(zoneId)
	if err != nil {
		return err
	}
	if old == nil {
		return nil
	}
	if err := s.write(zoneId, linefmt.Excise(old, roomId)); err != nil {
		return fmt.Errorf("deleting room %s: %w", roomId, err)
	}
	slog.DebugContext(ctx, "room snapshot deleted", "roomId", roomId, "zoneId", zoneId)
	return nil
}

// LoadRoom restores ri from its zone file. A room with no saved block is
// left untouched.
func (s *Service) LoadRoom(ctx context.Context, ri *game.RoomInstance) (Result, error) {
	zoneId := ri.ZoneId()
	if zoneId == "" {
		return Result{}, fmt.Errorf("%w: %s", ErrNoZone, ri.Room.Id())
	}
	roomId := ri.Room.Id()
	return s.load(ctx, zoneId, func(id string) *game.RoomInstance {
		if id == roomId {
			return ri
		}
		return nil
	})
}

// LoadZone restores every room in rooms that has a block in the zone file.
// Blocks for rooms not in the map are skipped.
func (s *Service) LoadZone(ctx context.Context, zoneId string, rooms map[string]*game.RoomInstance) (Result, error) {
	return s.load(ctx, zoneId, func(id string) *game.RoomInstance {
		ri := rooms[id]
		if ri == nil {
			slog.WarnContext(ctx, "snapshot for unknown room, skipping", "roomId", id, "zoneId", zoneId)
		}
		return ri
	})
}

func (s *Service) load(ctx context.Context, zoneId string, lookup func(string) *game.RoomInstance) (Result, error) {
	s.mu.Lock()
	data, err := s.read(zoneId)
	s.mu.Unlock()
	if err != nil {
		s.metrics.Load(metrics.KindRoom, metrics.ResultError)
		return Result{}, err
	}
	if data == nil {
		s.metrics.Load(metrics.KindRoom, metrics.ResultMissing)
		return Result{}, nil
	}

	var res Result
	r := linefmt.NewReader(bytes.NewReader(data), s.protos)
	for {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.metrics.Load(metrics.KindRoom, metrics.ResultError)
			return res, fmt.Errorf("reading zone %s: %w", zoneId, err)
		}
		if b.Truncated {
			slog.WarnContext(ctx, "room snapshot truncated, loading what was read", "roomId", b.RoomId, "zoneId", zoneId)
		}
		if b.Malformed > 0 {
			slog.WarnContext(ctx, "room snapshot has malformed lines", "roomId", b.RoomId, "zoneId", zoneId, "count", b.Malformed)
		}

		if ri := lookup(b.RoomId); ri != nil {
			res.add(s.apply(ctx, ri, b))
		}
	}

	s.metrics.Load(metrics.KindRoom, metrics.ResultOK)
	s.metrics.Objects(metrics.KindRoom, res.Stats)
	return res, nil
}

// apply replaces the contents of ri with the block. Gear of a mobile whose
// definition is gone is left on the floor.
func (s *Service) apply(ctx context.Context, ri *game.RoomInstance, b *linefmt.Block) Result {
	ri.Clear()
	res := Result{Rooms: 1}
	floor := &objsave.RoomSink{Room: ri}
	logger := slog.Default().With("roomId", b.RoomId)

	for _, m := range b.Mobs {
		def := s.mobiles.Get(m.Id)
		if def == nil {
			slog.WarnContext(ctx, "mobile definition not found, leaving its gear on the floor", "roomId", b.RoomId, "mobId", m.Id)
			res.Stats.Add(objsave.Rebuild(ctx, m.Records, s.protos, floor, objsave.WithLogger(logger)))
			continue
		}

		mi := game.NewMobileInstance(storage.NewResolvedSmartIdentifier(m.Id, def))
		res.Stats.Add(objsave.Rebuild(ctx, m.Records, s.protos, &objsave.GearSink{
			Actor:  def.Actor,
			Gear:   &mi.ActorInstance,
			Logger: logger,
		}, objsave.WithLogger(logger)))
		ri.AddMob(mi)
		res.Mobs++
	}

	res.Stats.Add(objsave.Rebuild(ctx, b.Objects, s.protos, floor, objsave.WithLogger(logger)))
	return res
}
