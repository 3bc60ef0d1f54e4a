// Package linefmt reads and writes room snapshot files.
//
// A snapshot file holds one block per room. Every line starts with a tag:
//
//	#<room> <unix time>               block header
//	M <mobile>                        a mobile standing in the room
//	E <slot> <object>                 object worn by the last mobile
//	I <object>                        object carried by the last mobile
//	N <depth> <object>                object nested inside the last E, I or N
//	O <object> <timer> <weight> <cost> <reserved>
//	                                  object on the floor, followed by:
//	T <type>
//	V <v0> <v1> <v2> <v3>
//	X <e0> <e1> <e2> <e3>             extra flag words
//	W <w0> <w1> <w2> <w3>             wear flag words
//	A|S|L|D <text>                    name, short, long and detailed text
//	{ ... }                           O lines for the object's contents
//	$                                 end of block
//
// Object ids of "-" have no prototype. Mobile gear is stored by id only and
// rebuilt from prototypes; floor objects carry their full state.
package linefmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/objsave"
)

const noProto = "-"

// Mob is a mobile and the records of the gear it had when saved.
type Mob struct {
	Id      string
	Records []objsave.Record
}

// Block is the snapshot of one room.
type Block struct {
	RoomId    string
	Timestamp int64
	Mobs      []Mob
	// Objects lie on the floor, contents before their container.
	Objects []objsave.Record

	// Truncated is set when the block ended without its sentinel.
	Truncated bool
	// Malformed counts lines and fields that could not be parsed.
	Malformed int
}

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

func escape(s string) string {
	return escaper.Replace(s)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func protoId(rec objsave.Record) string {
	if rec.Prototype == "" {
		return noProto
	}
	return rec.Prototype
}

// WriteBlock appends b to w.
func WriteBlock(w io.Writer, b *Block) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#%s %d\n", b.RoomId, b.Timestamp)

	for _, m := range b.Mobs {
		fmt.Fprintf(bw, "M %s\n", m.Id)
		for _, n := range objsave.Nest(m.Records) {
			writeGear(bw, n, 0)
		}
	}
	for _, n := range objsave.Nest(b.Objects) {
		writeObject(bw, n)
	}

	bw.WriteString("$\n")
	return bw.Flush()
}

func writeGear(w *bufio.Writer, n *objsave.Node, depth int) {
	switch {
	case depth > 0:
		fmt.Fprintf(w, "N %d %s\n", depth, protoId(n.Record))
	case n.Record.IsEquipped():
		fmt.Fprintf(w, "E %s %s\n", n.Record.Slot(), protoId(n.Record))
	default:
		fmt.Fprintf(w, "I %s\n", protoId(n.Record))
	}
	for _, c := range n.Contents {
		writeGear(w, c, depth+1)
	}
}

func writeObject(w *bufio.Writer, n *objsave.Node) {
	r := n.Record
	fmt.Fprintf(w, "O %s %d %d %d 0\n", protoId(r), r.Timer, r.Weight, r.Cost)
	fmt.Fprintf(w, "T %d\n", r.Type)
	fmt.Fprintf(w, "V %d %d %d %d\n", r.Values[0], r.Values[1], r.Values[2], r.Values[3])
	fmt.Fprintf(w, "X %d %d %d %d\n", r.ExtraFlags[0], r.ExtraFlags[1], r.ExtraFlags[2], r.ExtraFlags[3])
	fmt.Fprintf(w, "W %d %d %d %d\n", r.WearFlags[0], r.WearFlags[1], r.WearFlags[2], r.WearFlags[3])

	for _, s := range []struct {
		tag string
		val *string
	}{
		{"A", r.Name},
		{"S", r.ShortDesc},
		{"L", r.LongDesc},
		{"D", r.DetailedDesc},
	} {
		if s.val != nil {
			fmt.Fprintf(w, "%s %s\n", s.tag, escape(*s.val))
		}
	}

	if len(n.Contents) > 0 {
		w.WriteString("{\n")
		for _, c := range n.Contents {
			writeObject(w, c)
		}
		w.WriteString("}\n")
	}
}

// Reader reads blocks from a snapshot file.
type Reader struct {
	sc     *bufio.Scanner
	protos objsave.Prototypes

	pending *string
	eof     bool
}

func NewReader(r io.Reader, protos objsave.Prototypes) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{sc: sc, protos: protos}
}

func (r *Reader) next() (string, bool) {
	if r.pending != nil {
		line := *r.pending
		r.pending = nil
		return line, true
	}
	if r.eof || !r.sc.Scan() {
		r.eof = true
		return "", false
	}
	return strings.TrimRight(r.sc.Text(), "\r"), true
}

func (r *Reader) unread(line string) {
	r.pending = &line
}

// Next returns the next block, or io.EOF when there are no more. A block
// cut short by the end of the file or by the next header is returned with
// Truncated set.
func (r *Reader) Next() (*Block, error) {
	var b *Block
	for b == nil {
		line, ok := r.next()
		if !ok {
			if err := r.sc.Err(); err != nil {
				return nil, fmt.Errorf("reading snapshot: %w", err)
			}
			return nil, io.EOF
		}
		if strings.HasPrefix(line, "#") {
			b = parseHeader(line)
		}
	}

	var mob *Mob
	var gear gearStack
	endMob := func() {
		if mob != nil {
			mob.Records = gear.drain(mob.Records)
			b.Mobs = append(b.Mobs, *mob)
			mob = nil
		}
	}

	for {
		line, ok := r.next()
		if !ok {
			b.Truncated = true
			endMob()
			return b, nil
		}
		if strings.HasPrefix(line, "#") {
			r.unread(line)
			b.Truncated = true
			endMob()
			return b, nil
		}

		tag, rest, _ := strings.Cut(line, " ")
		switch tag {
		case "$":
			endMob()
			return b, nil
		case "M":
			endMob()
			mob = &Mob{Id: rest}
		case "E", "I", "N":
			if mob == nil {
				b.Malformed++
				continue
			}
			e, ok := r.parseGear(tag, rest)
			if !ok {
				b.Malformed++
				continue
			}
			mob.Records = gear.push(mob.Records, e)
		case "O":
			b.Objects = append(b.Objects, r.readObject(b, rest, 0)...)
		case "":
		default:
			b.Malformed++
		}
	}
}

func parseHeader(line string) *Block {
	b := &Block{}
	fields := strings.Fields(strings.TrimPrefix(line, "#"))
	if len(fields) > 0 {
		b.RoomId = fields[0]
	}
	if len(fields) > 1 {
		ts, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			b.Malformed++
		}
		b.Timestamp = ts
	}
	return b
}

type gearEntry struct {
	level int
	rec   objsave.Record
}

// gearStack turns gear listed parents first into records listed contents
// first.
type gearStack []gearEntry

// push emits every waiting entry at level or deeper, then waits e.
func (s *gearStack) push(out []objsave.Record, e gearEntry) []objsave.Record {
	for len(*s) > 0 && (*s)[len(*s)-1].level >= e.level {
		out = append(out, (*s)[len(*s)-1].rec)
		*s = (*s)[:len(*s)-1]
	}
	*s = append(*s, e)
	return out
}

func (s *gearStack) drain(out []objsave.Record) []objsave.Record {
	for len(*s) > 0 {
		out = append(out, (*s)[len(*s)-1].rec)
		*s = (*s)[:len(*s)-1]
	}
	return out
}

func (r *Reader) parseGear(tag, rest string) (gearEntry, bool) {
	fields := strings.Fields(rest)
	switch tag {
	case "E":
		if len(fields) != 2 {
			return gearEntry{}, false
		}
		slot, ok := game.ParseWearSlot(fields[0])
		if !ok {
			return gearEntry{}, false
		}
		return gearEntry{level: 0, rec: r.record(fields[1], objsave.EquipLocation(slot))}, true
	case "I":
		if len(fields) != 1 {
			return gearEntry{}, false
		}
		return gearEntry{level: 0, rec: r.record(fields[0], 0)}, true
	default:
		if len(fields) != 2 {
			return gearEntry{}, false
		}
		depth, err := strconv.Atoi(fields[0])
		if err != nil || depth < 1 {
			return gearEntry{}, false
		}
		return gearEntry{level: depth, rec: r.record(fields[1], objsave.NestedLocation(depth))}, true
	}
}

func (r *Reader) record(id string, loc int) objsave.Record {
	if id == noProto {
		id = ""
	}
	return objsave.NewRecord(id, loc, r.protos)
}

// readObject reads the O block whose first line held rest, and any nested
// blocks inside it. The records come back contents first.
func (r *Reader) readObject(b *Block, rest string, depth int) []objsave.Record {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		b.Malformed++
		fields = []string{noProto}
	}
	rec := r.record(fields[0], objsave.NestedLocation(depth))
	for i, dst := range []*int{&rec.Timer, &rec.Weight, &rec.Cost} {
		if i+1 < len(fields) {
			b.Malformed += parseInts(fields[i+1:i+2], dst)
		}
	}

	var contents []objsave.Record
	for {
		line, ok := r.next()
		if !ok {
			b.Truncated = true
			break
		}
		tag, val, _ := strings.Cut(line, " ")
		switch tag {
		case "T":
			var t int
			if parseInts([]string{val}, &t) == 0 {
				rec.Type = game.ObjectType(t)
			} else {
				b.Malformed++
			}
		case "V":
			b.Malformed += parseInts(strings.Fields(val), &rec.Values[0], &rec.Values[1], &rec.Values[2], &rec.Values[3])
		case "X":
			b.Malformed += parseFlags(strings.Fields(val), &rec.ExtraFlags)
		case "W":
			b.Malformed += parseFlags(strings.Fields(val), &rec.WearFlags)
		case "A":
			rec.Name = text(val)
		case "S":
			rec.ShortDesc = text(val)
		case "L":
			rec.LongDesc = text(val)
		case "D":
			rec.DetailedDesc = text(val)
		case "{":
			contents = append(contents, r.readContents(b, depth+1)...)
		default:
			r.unread(line)
			return append(contents, rec)
		}
	}
	return append(contents, rec)
}

func (r *Reader) readContents(b *Block, depth int) []objsave.Record {
	var out []objsave.Record
	for {
		line, ok := r.next()
		if !ok {
			b.Truncated = true
			return out
		}
		if strings.HasPrefix(line, "#") {
			// The next room starts before this one closed its contents.
			r.unread(line)
			b.Truncated = true
			return out
		}
		tag, rest, _ := strings.Cut(line, " ")
		switch tag {
		case "}":
			return out
		case "O":
			out = append(out, r.readObject(b, rest, depth)...)
		case "$", "M":
			r.unread(line)
			b.Malformed++
			return out
		default:
			b.Malformed++
		}
	}
}

func text(s string) *string {
	v := unescape(s)
	return &v
}

// parseInts parses fields into dsts, leaving a destination untouched when
// its field is missing or bad. It returns the number of bad fields.
func parseInts(fields []string, dsts ...*int) int {
	bad := 0
	for i, dst := range dsts {
		if i >= len(fields) {
			break
		}
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			bad++
			continue
		}
		*dst = v
	}
	return bad
}

func parseFlags(fields []string, fs *game.FlagSet) int {
	bad := 0
	for i := 0; i < game.FlagWords && i < len(fields); i++ {
		v, err := strconv.ParseUint(fields[i], 10, 32)
		if err != nil {
			bad++
			continue
		}
		fs[i] = uint32(v)
	}
	return bad
}
