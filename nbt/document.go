package nbt

import (
	"io"
	"os"

	"golang.org/x/xerrors"
)

// Document is the materialized form of a complete NBT byte stream: a
// root-named COMPOUND node, plus an optional source path and compression
// hint.
type Document struct {
	RootName string
	Root     *Node

	// SourcePath is the file a Document was loaded from, if any. Empty for
	// documents built in memory or read from an arbitrary io.Reader.
	SourcePath string

	// Compression records the wrapper Load detected (or Save was last
	// called with), purely informational: Save always takes an explicit
	// Compression argument rather than trusting this field.
	Compression Compression

	// Warnings collects non-fatal conditions Load tolerated rather than
	// rejecting.
	Warnings []string
}

// NewDocument creates an empty document with an empty root compound.
func NewDocument(rootName string) *Document {
	return &Document{RootName: rootName, Root: NewCompound()}
}

// Load auto-detects the outer compression wrapper (gzip, zlib, or none),
// decompresses, and parses the result into a Document.
func Load(r io.Reader) (*Document, error) {
	c, sniffed, err := DetectCompression(r)
	if err != nil {
		return nil, xerrors.Errorf("nbt: loading document: %w", err)
	}
	dr, err := WrapDecompressor(c, sniffed)
	if err != nil {
		return nil, xerrors.Errorf("nbt: loading document: %w", err)
	}
	defer dr.Close()

	doc, err := BuildTree(dr)
	if err != nil {
		return nil, xerrors.Errorf("nbt: loading document: %w", err)
	}
	doc.Compression = c
	return doc, nil
}

// LoadFile opens path and loads it as a Document, stamping SourcePath.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("nbt: loading %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, xerrors.Errorf("nbt: loading %s: %w", path, err)
	}
	doc.SourcePath = path
	return doc, nil
}

// Save serializes doc and wraps it in the requested compression.
func (doc *Document) Save(w io.Writer, c Compression) error {
	cw, err := WrapCompressor(c, w)
	if err != nil {
		return xerrors.Errorf("nbt: saving document: %w", err)
	}
	if err := WriteTree(cw, doc); err != nil {
		cw.Close()
		return xerrors.Errorf("nbt: saving document: %w", err)
	}
	if err := cw.Close(); err != nil {
		return xerrors.Errorf("nbt: saving document: %w", err)
	}
	doc.Compression = c
	return nil
}

// SaveFile serializes doc to path, creating or truncating it, and stamps
// SourcePath on success.
func (doc *Document) SaveFile(path string, c Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("nbt: saving %s: %w", path, err)
	}
	defer f.Close()

	if err := doc.Save(f, c); err != nil {
		return xerrors.Errorf("nbt: saving %s: %w", path, err)
	}
	doc.SourcePath = path
	return nil
}
