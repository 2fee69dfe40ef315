package store

import (
	"errors"
	"fmt"
)

// StreamID is the ms-seq pair identifying a stream entry (§3/§4.B).
type StreamID struct {
	Ms  int64
	Seq int64
}

func (id StreamID) Less(other StreamID) bool {
	if id.Ms != other.Ms {
		return id.Ms < other.Ms
	}
	return id.Seq < other.Seq
}

func (id StreamID) Equal(other StreamID) bool { return id.Ms == other.Ms && id.Seq == other.Seq }

func (id StreamID) String() string { return fmt.Sprintf("%d-%d", id.Ms, id.Seq) }

// StreamEntry is one append-only log record: an ID and an ordered
// field/value map (order preserved via Fields).
type StreamEntry struct {
	ID     StreamID
	Fields []FieldValue
}

type FieldValue struct {
	Field string
	Value []byte
}

// PendingEntry tracks one delivered-but-unacknowledged message for a
// (group, consumer) pair.
type PendingEntry struct {
	ID            StreamID
	Consumer      string
	DeliveryTime  int64 // unix millis of last delivery
	DeliveryCount int64
}

// ConsumerGroup is a named cursor over the stream tracking a
// last-delivered ID and a pending-entries list (§4.B).
type ConsumerGroup struct {
	Name        string
	LastDelivered StreamID
	Pending     map[StreamID]*PendingEntry
	Consumers   map[string]bool
}

func newConsumerGroup(name string, start StreamID) *ConsumerGroup {
	return &ConsumerGroup{
		Name:          name,
		LastDelivered: start,
		Pending:       map[StreamID]*PendingEntry{},
		Consumers:     map[string]bool{},
	}
}

// Stream is an append-only log of entries plus named consumer groups.
type Stream struct {
	Entries []StreamEntry
	LastID  StreamID
	Groups  map[string]*ConsumerGroup
}

func newStream() *Stream {
	return &Stream{Groups: map[string]*ConsumerGroup{}}
}

var (
	ErrStreamIDNotGreater = errors.New("ERR The ID specified in XADD is equal or smaller than the target stream top item")
	ErrNoSuchGroup        = errors.New("NOGROUP No such consumer group")
	ErrGroupExists        = errors.New("BUSYGROUP Consumer Group name already exists")
)

// XAdd appends an entry. If autoID is set, the next ID is generated
// automatically (current-time-ms, monotonic seq) and id is ignored;
// otherwise id must be non-zero and strictly greater than the stream's
// last ID.
func (v *Value) XAdd(id StreamID, autoID bool, nowMs int64, fields []FieldValue) (StreamID, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return StreamID{}, err
	}
	s := v.Stream
	if autoID {
		if nowMs > s.LastID.Ms {
			id = StreamID{Ms: nowMs, Seq: 0}
		} else {
			id = StreamID{Ms: s.LastID.Ms, Seq: s.LastID.Seq + 1}
		}
	} else {
		if id.Ms == 0 && id.Seq == 0 {
			return StreamID{}, ErrStreamIDNotGreater
		}
		if len(s.Entries) > 0 && !s.LastID.Less(id) {
			return StreamID{}, ErrStreamIDNotGreater
		}
	}
	s.Entries = append(s.Entries, StreamEntry{ID: id, Fields: fields})
	s.LastID = id
	return id, nil
}

// Range returns entries with ID in [start,end] inclusive, oldest-first
// (XRANGE) or newest-first when rev is true (XREVRANGE), capped at count
// entries if count >= 0.
func (v *Value) XRange(start, end StreamID, rev bool, count int) ([]StreamEntry, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return nil, err
	}
	var out []StreamEntry
	for _, e := range v.Stream.Entries {
		if e.ID.Less(start) || end.Less(e.ID) {
			continue
		}
		out = append(out, e)
	}
	if rev {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if count >= 0 && len(out) > count {
		out = out[:count]
	}
	return out, nil
}

// XReadAfter returns entries strictly after `after`, up to count (count<0
// = unlimited); used for XREAD.
func (v *Value) XReadAfter(after StreamID, count int) ([]StreamEntry, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return nil, err
	}
	var out []StreamEntry
	for _, e := range v.Stream.Entries {
		if !after.Less(e.ID) {
			continue
		}
		out = append(out, e)
		if count >= 0 && len(out) >= count {
			break
		}
	}
	return out, nil
}

func (v *Value) XGroupCreate(group string, start StreamID, mkstream bool) error {
	if err := typeCheck(v, KindStream); err != nil {
		return err
	}
	if _, ok := v.Stream.Groups[group]; ok {
		return ErrGroupExists
	}
	v.Stream.Groups[group] = newConsumerGroup(group, start)
	return nil
}

func (v *Value) XGroupSetID(group string, id StreamID) error {
	if err := typeCheck(v, KindStream); err != nil {
		return err
	}
	g, ok := v.Stream.Groups[group]
	if !ok {
		return ErrNoSuchGroup
	}
	g.LastDelivered = id
	return nil
}

func (v *Value) XGroupDestroy(group string) (bool, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return false, err
	}
	_, ok := v.Stream.Groups[group]
	delete(v.Stream.Groups, group)
	return ok, nil
}

// XReadGroup delivers up to count new entries (those after the group's
// LastDelivered) to consumer, recording each in the group's PEL.
func (v *Value) XReadGroup(group, consumer string, count int, nowMs int64) ([]StreamEntry, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return nil, err
	}
	g, ok := v.Stream.Groups[group]
	if !ok {
		return nil, ErrNoSuchGroup
	}
	g.Consumers[consumer] = true
	entries, err := v.XReadAfter(g.LastDelivered, count)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		g.Pending[e.ID] = &PendingEntry{ID: e.ID, Consumer: consumer, DeliveryTime: nowMs, DeliveryCount: 1}
		g.LastDelivered = e.ID
	}
	return entries, nil
}

// XAck acknowledges (removes from the PEL) the given IDs for group.
func (v *Value) XAck(group string, ids []StreamID) (int, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return 0, err
	}
	g, ok := v.Stream.Groups[group]
	if !ok {
		return 0, ErrNoSuchGroup
	}
	acked := 0
	for _, id := range ids {
		if _, ok := g.Pending[id]; ok {
			delete(g.Pending, id)
			acked++
		}
	}
	return acked, nil
}

// XClaim reassigns pending entries idle for at least minIdleMs to
// consumer, bumping their delivery count.
func (v *Value) XClaim(group, consumer string, ids []StreamID, minIdleMs, nowMs int64) ([]StreamEntry, error) {
	if err := typeCheck(v, KindStream); err != nil {
		return nil, err
	}
	g, ok := v.Stream.Groups[group]
	if !ok {
		return nil, ErrNoSuchGroup
	}
	var claimed []StreamEntry
	for _, id := range ids {
		pe, ok := g.Pending[id]
		if !ok {
			continue
		}
		if nowMs-pe.DeliveryTime < minIdleMs {
			continue
		}
		pe.Consumer = consumer
		pe.DeliveryTime = nowMs
		pe.DeliveryCount++
		g.Consumers[consumer] = true
		for _, e := range v.Stream.Entries {
			if e.ID.Equal(id) {
				claimed = append(claimed, e)
				break
			}
		}
	}
	return claimed, nil
}
