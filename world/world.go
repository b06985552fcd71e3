// Package world decodes a Minecraft save directory's layout: level data,
// dimensions, and the region files within each dimension.
package world

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"

	"github.com/theJ8910/jnbt/nbt"
)

// World is a handle on a save directory's root. Nothing is read eagerly
// except what each method explicitly loads.
type World struct {
	root string
}

// Open returns a World rooted at dir. dir is not validated to exist until a
// method that touches the filesystem is called.
func Open(dir string) *World {
	return &World{root: dir}
}

func (w *World) Root() string { return w.root }

// LoadLevelData reads and materializes level.dat, the gzip-compressed root
// NBT document carrying world metadata under its Data compound.
func (w *World) LoadLevelData() (*nbt.Document, error) {
	path := filepath.Join(w.root, "level.dat")
	doc, err := nbt.LoadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("world: loading level data: %w", err)
	}
	return doc, nil
}

// ListPlayers enumerates playerdata/*.dat, returning each file's UUID stem.
func (w *World) ListPlayers() ([]string, error) {
	dir := filepath.Join(w.root, "playerdata")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, xerrors.Errorf("world: listing players: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".dat") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".dat"))
	}
	slices.Sort(ids)
	return ids, nil
}

// LoadPlayer reads playerdata/<uuid>.dat.
func (w *World) LoadPlayer(uuid string) (*nbt.Document, error) {
	path := filepath.Join(w.root, "playerdata", uuid+".dat")
	doc, err := nbt.LoadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("world: loading player %s: %w", uuid, err)
	}
	return doc, nil
}
