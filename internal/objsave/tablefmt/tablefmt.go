// Package tablefmt reads and writes player rent files.
//
// A rent file is a JSON document holding a header followed by one row per
// object, in the order produced by objsave.FlattenGear:
//
//	{"version":1,"header":{...},"objects":[{...},...]}
//
// Rows locate objects with a locate/nest pair: nest > 0 means the object is
// nested at that depth, otherwise locate is the raw location. Readers are
// lenient: unknown keys are ignored, fields that fail to parse keep the
// prototype's value, and a file cut short keeps every row read so far.
package tablefmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/objsave"
)

// Version is the rent file version written by Encode.
const Version = 1

var (
	ErrMissingHeader = errors.New("rent file has no header")
	ErrParse         = errors.New("rent file is malformed")
)

// Header is the mandatory first section of a rent file.
type Header struct {
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
	// NetAdjustment is the per-day rent charged while the file is stored.
	NetAdjustment int `json:"net_adjustment"`
	Coins         int `json:"coins"`
	BankCoins     int `json:"bank_coins"`
	// ItemCount is informational only; readers never trust it.
	ItemCount int `json:"item_count"`
}

// File is the decoded contents of a rent file.
type File struct {
	Header  Header
	Records []objsave.Record

	// Truncated is set when the file ended before the object list was closed.
	Truncated bool
	// Malformed counts fields and rows that were skipped because they could
	// not be parsed.
	Malformed int
}

type row struct {
	Proto      string                 `json:"proto,omitempty"`
	Locate     int                    `json:"locate"`
	Nest       int                    `json:"nest"`
	Type       game.ObjectType        `json:"type"`
	Values     [game.NumValues]int    `json:"values"`
	ExtraFlags [game.FlagWords]uint32 `json:"extra_flags"`
	WearFlags  [game.FlagWords]uint32 `json:"wear_flags"`
	Weight     int                    `json:"weight"`
	Cost       int                    `json:"cost"`
	Timer      int                    `json:"timer"`
	Name       *string                `json:"name,omitempty"`
	ShortDesc  *string                `json:"short_desc,omitempty"`
	LongDesc   *string                `json:"long_desc,omitempty"`
	Detailed   *string                `json:"detailed_desc,omitempty"`
}

func toRow(rec objsave.Record) row {
	r := row{
		Proto:      rec.Prototype,
		Type:       rec.Type,
		Values:     rec.Values,
		ExtraFlags: rec.ExtraFlags,
		WearFlags:  rec.WearFlags,
		Weight:     rec.Weight,
		Cost:       rec.Cost,
		Timer:      rec.Timer,
		Name:       rec.Name,
		ShortDesc:  rec.ShortDesc,
		LongDesc:   rec.LongDesc,
		Detailed:   rec.DetailedDesc,
	}
	if d := rec.Depth(); d > 0 {
		r.Nest = d
	} else {
		r.Locate = rec.Location
	}
	return r
}

// Encode writes hdr and recs as a rent file. One object row is written per
// line so damaged files can be inspected by hand.
func Encode(w io.Writer, hdr Header, recs []objsave.Record) error {
	hb, err := json.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("marshalling header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "{\"version\":%d,\"header\":%s,\"objects\":[", Version, hb); err != nil {
		return err
	}

	for i, rec := range recs {
		b, err := json.Marshal(toRow(rec))
		if err != nil {
			return fmt.Errorf("marshalling object %d: %w", i, err)
		}
		sep := ","
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s\n%s", sep, b); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "\n]}\n")
	return err
}

// Decode reads a rent file. Records are seeded from protos so that missing
// or unparseable fields fall back to the prototype.
func Decode(r io.Reader, protos objsave.Prototypes) (*File, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		if errors.Is(err, ErrParse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	f := &File{}
	haveHeader := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return f.cut(haveHeader, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %v", ErrParse, tok)
		}

		switch key {
		case "version":
			var v int
			if err := dec.Decode(&v); err != nil {
				return f.cut(haveHeader, err)
			}
			if v > Version {
				return nil, fmt.Errorf("%w: unsupported version %d", ErrParse, v)
			}
		case "header":
			var fields map[string]json.RawMessage
			if err := dec.Decode(&fields); err != nil {
				return nil, fmt.Errorf("%w: header: %w", ErrParse, err)
			}
			f.Header = f.parseHeader(fields)
			haveHeader = true
		case "objects":
			if !haveHeader {
				return nil, ErrMissingHeader
			}
			if err := f.readObjects(dec, protos); err != nil {
				return f.cut(haveHeader, err)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return f.cut(haveHeader, err)
			}
		}
	}

	if !haveHeader {
		return nil, ErrMissingHeader
	}
	return f, nil
}

// cut decides what a read error means: before the header the file is
// unusable, after it the file was truncated and what was read stands.
func (f *File) cut(haveHeader bool, err error) (*File, error) {
	if !haveHeader {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	f.Truncated = true
	return f, nil
}

func (f *File) readObjects(dec *json.Decoder, protos objsave.Prototypes) error {
	if err := expectDelim(dec, '['); err != nil {
		return err
	}
	for dec.More() {
		var fields map[string]json.RawMessage
		if err := dec.Decode(&fields); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				f.Malformed++
				continue
			}
			return err
		}
		f.Records = append(f.Records, f.parseRow(fields, protos))
	}
	return expectDelim(dec, ']')
}

func (f *File) parseHeader(fields map[string]json.RawMessage) Header {
	var h Header
	field(f, fields, "reason", &h.Reason)
	field(f, fields, "timestamp", &h.Timestamp)
	field(f, fields, "net_adjustment", &h.NetAdjustment)
	field(f, fields, "coins", &h.Coins)
	field(f, fields, "bank_coins", &h.BankCoins)
	field(f, fields, "item_count", &h.ItemCount)
	return h
}

func (f *File) parseRow(fields map[string]json.RawMessage, protos objsave.Prototypes) objsave.Record {
	var proto string
	var locate, nest int
	field(f, fields, "proto", &proto)
	field(f, fields, "locate", &locate)
	field(f, fields, "nest", &nest)

	loc := locate
	if nest > 0 {
		loc = objsave.NestedLocation(nest)
	}

	rec := objsave.NewRecord(proto, loc, protos)
	field(f, fields, "type", &rec.Type)
	field(f, fields, "values", &rec.Values)
	field(f, fields, "extra_flags", &rec.ExtraFlags)
	field(f, fields, "wear_flags", &rec.WearFlags)
	field(f, fields, "weight", &rec.Weight)
	field(f, fields, "cost", &rec.Cost)
	field(f, fields, "timer", &rec.Timer)
	field(f, fields, "name", &rec.Name)
	field(f, fields, "short_desc", &rec.ShortDesc)
	field(f, fields, "long_desc", &rec.LongDesc)
	field(f, fields, "detailed_desc", &rec.DetailedDesc)
	return rec
}

// field unmarshals fields[key] into dst, leaving dst alone if the key is
// absent or its value does not parse.
func field[T any](f *File, fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		f.Malformed++
		return
	}
	*dst = v
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, found %v", ErrParse, want, tok)
	}
	return nil
}
