package region

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorKind classifies the ways a region-layer operation can fail.
type ErrorKind int

const (
	_ ErrorKind = iota
	ErrCorruptHeader
	ErrTruncatedChunk
	ErrUnknownCompression
	ErrNoSuchChunk
	ErrSectorOverlap
)

func (k ErrorKind) String() string {
	switch k {
	case ErrCorruptHeader:
		return "CorruptHeader"
	case ErrTruncatedChunk:
		return "TruncatedChunk"
	case ErrUnknownCompression:
		return "UnknownCompression"
	case ErrNoSuchChunk:
		return "NoSuchChunk"
	case ErrSectorOverlap:
		return "SectorOverlap"
	default:
		return "Unknown"
	}
}

// Error is returned by region-layer operations. ChunkX/ChunkZ are the chunk
// coordinates the failure concerns, as the caller passed them to ReadChunk
// or ReadChunkDocument; header failures from NewReader report (0,0).
type Error struct {
	Kind           ErrorKind
	ChunkX, ChunkZ int
	Cause          error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("region: %s at chunk (%d,%d): %v", e.Kind, e.ChunkX, e.ChunkZ, e.Cause)
	}
	return fmt.Sprintf("region: %s at chunk (%d,%d)", e.Kind, e.ChunkX, e.ChunkZ)
}

func (e *Error) Unwrap() error { return e.Cause }

func newRegionError(kind ErrorKind, cx, cz int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, ChunkX: cx, ChunkZ: cz, Cause: xerrors.Errorf(format, args...)}
}
