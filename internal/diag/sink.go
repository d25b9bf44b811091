package diag

import (
	"encoding/binary"
	"sort"

	"github.com/minio/highwayhash"
)

// hashKey mirrors the teacher's graph.Hash helper (a fixed-key HighwayHash
// over raw bytes) to build the coalescing identity for one diagnostic,
// rather than composing a string map key by hand.
var hashKey = []byte("reaper-diagnostic-dedup-key-0000")

func contentHash(d Diagnostic) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// hashKey is a fixed 32-byte constant; New64 only errors on key
		// length, so this path is unreachable in practice.
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(d.Line))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(d.Col))
	h.Write(buf[:])
	h.Write([]byte(d.File))
	h.Write([]byte(d.Code))
	h.Write([]byte(d.Message))
	return h.Sum64()
}

// Sink is the deduplicated, suppression-aware diagnostic collection
// described in spec §2/§4.7. It is not safe for concurrent use; per the
// concurrency model (§5), per-file tasks produce diagnostics into
// task-local slices and a single-threaded merge feeds them into one Sink.
type Sink struct {
	seen  map[uint64]bool
	diags []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{seen: map[uint64]bool{}}
}

// Add records d unless an equal-identity diagnostic was already added or a
// suppression directive in sup covers d's line and code.
func (s *Sink) Add(d Diagnostic, sup *Suppressions) {
	if sup.Suppresses(d.Line, d.Code) {
		return
	}
	h := contentHash(d)
	if s.seen[h] {
		return
	}
	s.seen[h] = true
	s.diags = append(s.diags, d)
}

// AddAll records every diagnostic in ds under the same suppression rules.
func (s *Sink) AddAll(ds []Diagnostic, sup *Suppressions) {
	for _, d := range ds {
		s.Add(d, sup)
	}
}

// Diagnostics returns the sink's contents sorted lexicographically by
// (file, line, col, rule), per spec §4.7.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Code < b.Code
	})
	return out
}

// Len reports how many distinct diagnostics the sink currently holds.
func (s *Sink) Len() int { return len(s.diags) }
