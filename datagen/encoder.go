package datagen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// EdgeKind selects the byte layout of one encoded edge.
type EdgeKind uint8

const (
	// EdgePlain writes the bare 8-byte target id.
	EdgePlain EdgeKind = iota
	// EdgeAttributed writes a tag byte, the marked id, a weight, a fraction
	// and a label string.
	EdgeAttributed
	// EdgeTaggedID writes only the marked id.
	EdgeTaggedID
)

const (
	// MaxNodeID is the largest id that fits below the 48-bit markers.
	MaxNodeID = 1<<48 - 1

	attributedMarker = uint64(1) << 48
	taggedIDMarker   = uint64(2) << 48
	attributedTag    = byte(0x01)

	// MaxAttributeWeight bounds the weight written on attributed edges.
	MaxAttributeWeight = 50

	plainEdgeSize = 8
)

func (k EdgeKind) String() string {
	switch k {
	case EdgePlain:
		return "plain"
	case EdgeAttributed:
		return "attributed"
	case EdgeTaggedID:
		return "tagged_id"
	default:
		return fmt.Sprintf("EdgeKind(%d)", uint8(k))
	}
}

// Edge labels of the employee graph and the layout each is loaded with.
const (
	LabelColleagues       = "Colleagues"
	LabelManager          = "Manager"
	LabelClients          = "Clients"
	LabelClientColleagues = "ClientColleagues"
)

var edgeLabels = map[string]struct {
	label string
	kind  EdgeKind
}{
	"colleagues":        {LabelColleagues, EdgePlain},
	"manager":           {LabelManager, EdgePlain},
	"clients":           {LabelClients, EdgeAttributed},
	"clientcolleagues":  {LabelClientColleagues, EdgeTaggedID},
	"client_colleagues": {LabelClientColleagues, EdgeTaggedID},
}

// ParseEdgeLabel resolves a case-insensitive label to its canonical spelling
// and edge kind.
func ParseEdgeLabel(s string) (string, EdgeKind, error) {
	e, ok := edgeLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", 0, &ConfigurationError{Param: "edge_label", Value: s, Reason: "unknown edge label"}
	}
	return e.label, e.kind, nil
}

// Encoder appends edges of one kind to a single adjacency buffer.
type Encoder struct {
	kind         EdgeKind
	rng          *rand.Rand
	strs         *StringGenerator
	stringLength int

	buf   []byte
	count int
}

// NewEncoder returns an encoder for kind. rng and strs feed the synthetic
// attributes and may be nil for kinds that carry none.
func NewEncoder(kind EdgeKind, rng *rand.Rand, strs *StringGenerator, stringLength int) (*Encoder, error) {
	if kind > EdgeTaggedID {
		return nil, &ConfigurationError{Param: "edge_kind", Value: kind, Reason: "unknown edge kind"}
	}
	if kind == EdgeAttributed && (rng == nil || strs == nil) {
		return nil, &ConfigurationError{Param: "edge_kind", Value: kind, Reason: "attributed edges need a random source and string generator"}
	}
	if stringLength <= 0 {
		stringLength = DefaultStringLength
	}
	return &Encoder{kind: kind, rng: rng, strs: strs, stringLength: stringLength}, nil
}

// Kind returns the layout this encoder writes.
func (e *Encoder) Kind() EdgeKind { return e.kind }

// Reset starts a new buffer. The previous buffer is left to its new owner.
func (e *Encoder) Reset() {
	e.buf = nil
	e.count = 0
}

// Append encodes one edge to target.
func (e *Encoder) Append(target int64) {
	id := uint64(target)
	switch e.kind {
	case EdgeAttributed:
		e.buf = append(e.buf, attributedTag)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, id|attributedMarker)
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(e.rng.Int31n(MaxAttributeWeight)))
		e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(e.rng.Float64()))
		s := e.strs.NextString(e.stringLength)
		e.buf = binary.AppendUvarint(e.buf, uint64(len(s)))
		e.buf = append(e.buf, s...)
	case EdgeTaggedID:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, id|taggedIDMarker)
	default:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, id)
	}
	e.count++
}

// Bytes returns the encoded buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// Count returns the number of edges appended since the last Reset.
func (e *Encoder) Count() int { return e.count }

// Edge is one decoded adjacency entry. Weight, Fraction and Label are only
// set for attributed edges.
type Edge struct {
	Target   int64
	Weight   int32
	Fraction float64
	Label    string
}

// Decode parses an adjacency buffer written with kind.
func Decode(kind EdgeKind, buf []byte) ([]Edge, error) {
	var edges []Edge
	for off := 0; off < len(buf); {
		switch kind {
		case EdgePlain:
			if len(buf)-off < plainEdgeSize {
				return edges, fmt.Errorf("truncated plain edge at offset %d", off)
			}
			edges = append(edges, Edge{Target: int64(binary.LittleEndian.Uint64(buf[off:]))})
			off += plainEdgeSize

		case EdgeTaggedID:
			if len(buf)-off < plainEdgeSize {
				return edges, fmt.Errorf("truncated tagged edge at offset %d", off)
			}
			raw := binary.LittleEndian.Uint64(buf[off:])
			if raw&^MaxNodeID != taggedIDMarker {
				return edges, fmt.Errorf("bad tagged edge marker %#x at offset %d", raw&^MaxNodeID, off)
			}
			edges = append(edges, Edge{Target: int64(raw & MaxNodeID)})
			off += plainEdgeSize

		case EdgeAttributed:
			const fixed = 1 + 8 + 4 + 8
			if len(buf)-off < fixed {
				return edges, fmt.Errorf("truncated attributed edge at offset %d", off)
			}
			if buf[off] != attributedTag {
				return edges, fmt.Errorf("bad attributed edge tag %#x at offset %d", buf[off], off)
			}
			raw := binary.LittleEndian.Uint64(buf[off+1:])
			if raw&^MaxNodeID != attributedMarker {
				return edges, fmt.Errorf("bad attributed edge marker %#x at offset %d", raw&^MaxNodeID, off)
			}
			e := Edge{
				Target:   int64(raw & MaxNodeID),
				Weight:   int32(binary.LittleEndian.Uint32(buf[off+9:])),
				Fraction: math.Float64frombits(binary.LittleEndian.Uint64(buf[off+13:])),
			}
			off += fixed
			n, w := binary.Uvarint(buf[off:])
			if w <= 0 || uint64(len(buf)-off-w) < n {
				return edges, fmt.Errorf("truncated attributed edge label at offset %d", off)
			}
			off += w
			e.Label = string(buf[off : off+int(n)])
			off += int(n)
			edges = append(edges, e)

		default:
			return nil, fmt.Errorf("unknown edge kind %d", kind)
		}
	}
	return edges, nil
}
