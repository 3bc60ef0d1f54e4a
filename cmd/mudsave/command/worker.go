package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/pixil98/go-service"
	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/messaging"
	"github.com/pixil98/mudsave/internal/rent"
	"github.com/pixil98/mudsave/internal/roomsave"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, err
	}

	recorder, metricsServer := cfg.Metrics.build()
	workers := service.WorkerList{}
	if metricsServer != nil {
		workers["metrics"] = metricsServer
	}

	var notifier rent.Notifier
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		notifier = messaging.NewPlayerPublisher(ns)
	}

	rooms := dict.NewRoomInstances()
	world := game.NewWorldState(rooms)

	roomSvc, err := cfg.RoomSnapshots.buildService(dict, recorder)
	if err != nil {
		return nil, fmt.Errorf("creating room snapshot service: %w", err)
	}
	restoreRooms(context.Background(), dict, roomSvc, rooms)

	rentSvc := cfg.Rent.buildService(dict.Objects, notifier, recorder)
	autosave, err := cfg.Rent.buildTicker(world, rentSvc, notifier, recorder)
	if err != nil {
		return nil, fmt.Errorf("creating autosave: %w", err)
	}
	snapshots, err := cfg.RoomSnapshots.buildTicker(world, roomSvc, recorder)
	if err != nil {
		return nil, fmt.Errorf("creating room snapshots: %w", err)
	}

	tick, err := time.ParseDuration(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}
	workers["driver"] = game.NewMudDriver([]game.Ticker{autosave, snapshots}, game.WithTickLength(tick))

	return workers, nil
}

// restoreRooms loads the snapshot of every zone into the world's rooms. A
// zone whose file cannot be read starts empty.
func restoreRooms(ctx context.Context, dict *game.Dictionary, svc *roomsave.Service, rooms map[string]*game.RoomInstance) {
	byZone := map[string]map[string]*game.RoomInstance{}
	for id, ri := range rooms {
		zoneId := ri.ZoneId()
		if byZone[zoneId] == nil {
			byZone[zoneId] = map[string]*game.RoomInstance{}
		}
		byZone[zoneId][id] = ri
	}

	zoneIds := make([]string, 0, len(dict.Zones.GetAll()))
	for id := range dict.Zones.GetAll() {
		zoneIds = append(zoneIds, id)
	}
	slices.Sort(zoneIds)

	var total roomsave.Result
	for _, zoneId := range zoneIds {
		res, err := svc.LoadZone(ctx, zoneId, byZone[zoneId])
		if err != nil {
			slog.ErrorContext(ctx, "restoring zone snapshot", "zoneId", zoneId, "error", err)
			continue
		}
		total.Rooms += res.Rooms
		total.Mobs += res.Mobs
		total.Stats.Add(res.Stats)
	}

	slog.InfoContext(ctx, "room snapshots restored",
		"zones", len(zoneIds),
		"rooms", total.Rooms,
		"mobs", total.Mobs,
		"objects", total.Stats.Restored,
		"fallbacks", total.Stats.Fallbacks())
}
