// Package rent saves and restores the belongings of player characters.
package rent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/metrics"
	"github.com/pixil98/mudsave/internal/objsave"
	"github.com/pixil98/mudsave/internal/objsave/tablefmt"
	"github.com/pixil98/mudsave/internal/storage"
)

const fileExt = ".objs"

const day = 24 * time.Hour

// Notifier delivers messages to a connected player.
type Notifier interface {
	PublishToPlayer(charId string, data []byte) error
}

// Result describes the outcome of loading a character's belongings.
type Result struct {
	// Found is false when the character had no rent file.
	Found  bool
	Reason Reason

	// Restored counts the objects loaded.
	Restored int
	// PlacedInFallback counts objects that ended up in the inventory
	// instead of where they were saved.
	PlacedInFallback int
	// Failed is set when the file existed but could not be read. The
	// character is left with nothing.
	Failed bool

	// Charged is the rent taken from the character's coins.
	Charged int
	Stats   objsave.Stats
}

// Service reads and writes rent files under a directory, one file per
// character, spread over one subdirectory per initial.
type Service struct {
	dir      string
	protos   objsave.Prototypes
	notifier Notifier
	metrics  *metrics.Recorder

	chargeRent bool
	now        func() time.Time
}

type ServiceOpt func(*Service)

// WithNotifier sends load notices to players.
func WithNotifier(n Notifier) ServiceOpt {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithMetrics(m *metrics.Recorder) ServiceOpt {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRentCharge enables charging for each day spent in rent.
func WithRentCharge(enabled bool) ServiceOpt {
	return func(s *Service) {
		s.chargeRent = enabled
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOpt {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(dir string, protos objsave.Prototypes, opts ...ServiceOpt) *Service {
	s := &Service{
		dir:    dir,
		protos: protos,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the file key for a character name.
func Key(name string) (string, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	if !storage.ValidIdentifier(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return key, nil
}

func (s *Service) path(name string) (string, error) {
	key, err := Key(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key[:1], key+fileExt), nil
}

// Save writes everything ch wears and carries. The previous file is only
// replaced once the new one is completely written.
func (s *Service) Save(ctx context.Context, ch *game.Character, reason Reason) (err error) {
	defer func() {
		s.metrics.Save(metrics.KindRent, string(reason), err)
	}()

	path, err := s.path(ch.Name)
	if err != nil {
		return err
	}

	recs := objsave.FlattenGear(&ch.ActorInstance)
	hdr := tablefmt.Header{
		Reason:    string(reason),
		Timestamp: s.now().Unix(),
		Coins:     ch.Gold,
		BankCoins: ch.BankGold,
		ItemCount: len(recs),
	}
	if reason == ReasonRented {
		hdr.NetAdjustment = dailyRent(&ch.ActorInstance)
	}

	var buf bytes.Buffer
	if err := tablefmt.Encode(&buf, hdr, recs); err != nil {
		return fmt.Errorf("encoding rent file for %s: %w", ch.Name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating rent directory: %w", err)
	}
	if err := storage.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("saving rent file for %s: %w", ch.Name, err)
	}

	slog.DebugContext(ctx, "rent file saved", "name", ch.Name, "reason", reason, "objects", len(recs))
	return nil
}

// Load replaces ch's belongings with the contents of its rent file. A
// missing file is not an error; the character simply has nothing. A file
// that cannot be parsed is moved aside so later saves cannot overwrite it;
// the character is left with nothing and the error is returned with
// Result.Failed set. Notices go to the player subscribed as charId.
func (s *Service) Load(ctx context.Context, charId string, ch *game.Character) (Result, error) {
	path, err := s.path(ch.Name)
	if err != nil {
		return Result{Failed: true}, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		s.metrics.Load(metrics.KindRent, metrics.ResultMissing)
		return Result{}, nil
	}
	if err != nil {
		s.metrics.Load(metrics.KindRent, metrics.ResultError)
		return Result{Failed: true}, fmt.Errorf("opening rent file for %s: %w", ch.Name, err)
	}

	ch.ActorInstance.Clear()

	file, err := tablefmt.Decode(f, s.protos)
	f.Close()
	if err != nil {
		s.metrics.Load(metrics.KindRent, metrics.ResultError)
		bad := s.quarantine(ctx, path)
		slog.ErrorContext(ctx, "unreadable rent file, starting with nothing", "name", ch.Name, "path", path, "movedTo", bad, "error", err)
		return Result{Found: true, Failed: true}, fmt.Errorf("reading rent file for %s: %w", ch.Name, err)
	}
	if file.Truncated {
		slog.WarnContext(ctx, "rent file truncated, loading what was read", "name", ch.Name, "objects", len(file.Records))
	}
	if file.Malformed > 0 {
		slog.WarnContext(ctx, "rent file has malformed fields", "name", ch.Name, "count", file.Malformed)
	}

	stats := objsave.Rebuild(ctx, file.Records, s.protos, &objsave.GearSink{
		Actor: ch.Actor,
		Gear:  &ch.ActorInstance,
	})

	res := Result{
		Found:            true,
		Reason:           ParseReason(file.Header.Reason),
		Restored:         stats.Restored,
		PlacedInFallback: stats.Fallbacks(),
		Stats:            stats,
	}
	if res.Reason == ReasonRented && s.chargeRent {
		res.Charged = s.charge(ch, file.Header)
	}

	s.metrics.Load(metrics.KindRent, metrics.ResultOK)
	s.metrics.Objects(metrics.KindRent, stats)
	slog.InfoContext(ctx, "rent file loaded",
		"name", ch.Name,
		"reason", res.Reason,
		"restored", res.Restored,
		"fallback", res.PlacedInFallback,
		"placeholders", stats.Placeholders,
		"charged", res.Charged)

	s.notify(ctx, charId, res)
	return res, nil
}

// quarantine renames an unreadable rent file so it is kept for repair. It
// returns the new path, or "" if the file could not be moved.
func (s *Service) quarantine(ctx context.Context, path string) string {
	bad := fmt.Sprintf("%s.bad-%d", path, s.now().Unix())
	if err := os.Rename(path, bad); err != nil {
		slog.ErrorContext(ctx, "moving unreadable rent file aside", "path", path, "error", err)
		return ""
	}
	return bad
}

// Delete removes the rent file for name. A missing file is not an error.
func (s *Service) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting rent file for %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name has a rent file.
func (s *Service) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// charge takes the rent owed since the file was written, first from coins
// on hand and then from the bank. Nothing is confiscated when the character
// cannot pay; the balance stops at zero.
func (s *Service) charge(ch *game.Character, hdr tablefmt.Header) int {
	if hdr.NetAdjustment <= 0 {
		return 0
	}
	elapsed := s.now().Sub(time.Unix(hdr.Timestamp, 0))
	days := int(elapsed / day)
	if days <= 0 {
		return 0
	}

	owed := days * hdr.NetAdjustment
	fromGold := min(owed, ch.Gold)
	ch.Gold -= fromGold
	fromBank := min(owed-fromGold, ch.BankGold)
	ch.BankGold -= fromBank
	return fromGold + fromBank
}

func (s *Service) notify(ctx context.Context, charId string, res Result) {
	if s.notifier == nil || charId == "" {
		return
	}

	var msgs []string
	if res.Charged > 0 {
		msgs = append(msgs, fmt.Sprintf("You were charged %d coins for storing your belongings.", res.Charged))
	}
	if res.PlacedInFallback > 0 {
		if res.Reason.Voluntary() {
			msgs = append(msgs, "Some of your belongings could not be put back where you left them and are in your inventory.")
		} else {
			msgs = append(msgs, "Your belongings were recovered, but some could not be put back where they were and are in your inventory.")
		}
	}
	for _, m := range msgs {
		if err := s.notifier.PublishToPlayer(charId, []byte(m)); err != nil {
			slog.WarnContext(ctx, "notifying player", "charId", charId, "error", err)
		}
	}
}

// dailyRent sums the per-day rent of everything ai wears and carries.
func dailyRent(ai *game.ActorInstance) int {
	total := 0
	add := func(oi *game.ObjectInstance) {
		if def := oi.Prototype(); def != nil {
			total += def.RentPerDay
		}
	}
	if ai.Equipment != nil {
		for _, oi := range ai.Equipment.Slots {
			if oi != nil {
				oi.Walk(add)
			}
		}
	}
	if ai.Inventory != nil {
		for _, oi := range ai.Inventory.Objs {
			oi.Walk(add)
		}
	}
	return total
}
