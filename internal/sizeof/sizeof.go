// Package sizeof estimates the in-memory footprint of cached values.
// Estimates are best-effort and feed monitoring only; they never gate a
// write.
package sizeof

import "github.com/vmihailenco/msgpack/v5"

// entryOverhead approximates per-entry bookkeeping (map slot, timestamps,
// tag slice header) on top of the payload itself.
const entryOverhead = 96

// Estimate returns an approximate byte size for v. Fast paths cover the
// common cached shapes; everything else is sized by its msgpack encoding,
// which is compact enough to serve as a floor. Unencodable values count as
// overhead only.
func Estimate(v any) int64 {
	switch x := v.(type) {
	case nil:
		return entryOverhead
	case string:
		return entryOverhead + int64(len(x))
	case []byte:
		return entryOverhead + int64(len(x))
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return entryOverhead + 8
	}
	b, err := msgpack.Marshal(v)
	if err != nil {
		return entryOverhead
	}
	return entryOverhead + int64(len(b))
}
