package region

import (
	"fmt"
	"sort"
)

// Finding describes one integrity problem discovered by Scan.
type Finding struct {
	Kind           ErrorKind
	ChunkX, ChunkZ int
	Detail         string
}

type sectorClaim struct {
	localX, localZ int
	start, end      int64 // [start,end) in sector units, from file start
}

// Scan validates the sector-sum and overlap invariants in a single pass
// over the header: every claimed sector run must fall inside the file and
// outside the two header sectors, and no two live entries may claim
// overlapping sectors. Every finding is reported rather than stopping at
// the first, since this is a full integrity pass rather than an on-demand
// read check.
func (reg *Region) Scan() []Finding {
	var findings []Finding
	var claims []sectorClaim
	sectorsInFile := reg.size / sectorSize

	for z := 0; z < chunkSideLen; z++ {
		for x := 0; x < chunkSideLen; x++ {
			idx := index(x, z)
			offset := reg.h.offsets[idx]
			count := reg.h.counts[idx]
			if offset == 0 && count == 0 {
				continue
			}
			if offset == 0 || count == 0 {
				findings = append(findings, Finding{
					Kind: ErrCorruptHeader, ChunkX: x, ChunkZ: z,
					Detail: fmt.Sprintf("offset=%d count=%d: one is zero but not both", offset, count),
				})
				continue
			}
			start := int64(offset)
			end := start + int64(count)
			switch {
			case start < headerSectors:
				findings = append(findings, Finding{
					Kind: ErrCorruptHeader, ChunkX: x, ChunkZ: z,
					Detail: fmt.Sprintf("claims sector %d, overlapping the %d-sector header", start, headerSectors),
				})
			case end > sectorsInFile:
				findings = append(findings, Finding{
					Kind: ErrCorruptHeader, ChunkX: x, ChunkZ: z,
					Detail: fmt.Sprintf("claims sectors [%d,%d), file has %d sectors", start, end, sectorsInFile),
				})
			default:
				claims = append(claims, sectorClaim{localX: x, localZ: z, start: start, end: end})
			}
		}
	}

	sort.Slice(claims, func(i, j int) bool { return claims[i].start < claims[j].start })
	for i := 1; i < len(claims); i++ {
		prev, cur := claims[i-1], claims[i]
		if cur.start < prev.end {
			findings = append(findings, Finding{
				Kind: ErrSectorOverlap, ChunkX: cur.localX, ChunkZ: cur.localZ,
				Detail: fmt.Sprintf("sectors [%d,%d) overlap chunk (%d,%d)'s [%d,%d)",
					cur.start, cur.end, prev.localX, prev.localZ, prev.start, prev.end),
			})
		}
	}

	return findings
}
