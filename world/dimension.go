package world

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/theJ8910/jnbt/nbt"
	"github.com/theJ8910/jnbt/region"
)

// DimensionKind identifies one of the three well-known dimensions, or a
// custom one addressed by directory name.
type DimensionKind int

const (
	DimensionOverworld DimensionKind = iota
	DimensionNether
	DimensionEnd
	DimensionCustom
)

func (k DimensionKind) String() string {
	switch k {
	case DimensionOverworld:
		return "overworld"
	case DimensionNether:
		return "nether"
	case DimensionEnd:
		return "end"
	case DimensionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Dimension is one dimension subtree of a world: a directory containing a
// region/ folder of chunk containers.
type Dimension struct {
	Kind DimensionKind
	// Name is the directory name for custom dimensions; empty for the three
	// well-known kinds, whose directory layout is fixed.
	Name string
	dir  string
}

// Dimensions enumerates the dimensions present under the world root: the
// overworld (the root itself, always present), DIM-1 (nether) and DIM1 (end)
// if their directories exist, and any other DIM<n> directory as a custom
// dimension.
func (w *World) Dimensions() ([]*Dimension, error) {
	dims := []*Dimension{{Kind: DimensionOverworld, dir: w.root}}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, xerrors.Errorf("world: enumerating dimensions: %w", err)
	}

	dimDirRe := regexp.MustCompile(`^DIM(-?[0-9]+)$`)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := dimDirRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		dir := filepath.Join(w.root, e.Name())
		switch m[1] {
		case "-1":
			dims = append(dims, &Dimension{Kind: DimensionNether, dir: dir})
		case "1":
			dims = append(dims, &Dimension{Kind: DimensionEnd, dir: dir})
		default:
			dims = append(dims, &Dimension{Kind: DimensionCustom, Name: e.Name(), dir: dir})
		}
	}
	return dims, nil
}

// Dimension returns the dimension matching the given name: "overworld",
// "nether", "end", or a custom directory name (e.g. "DIM7").
func (w *World) Dimension(name string) (*Dimension, error) {
	dims, err := w.Dimensions()
	if err != nil {
		return nil, err
	}
	for _, d := range dims {
		if name == d.Kind.String() && d.Kind != DimensionCustom {
			return d, nil
		}
		if d.Kind == DimensionCustom && d.Name == name {
			return d, nil
		}
	}
	return nil, xerrors.Errorf("world: no dimension named %q", name)
}

// RegionFile is one enumerated region container and the coordinates it
// covers.
type RegionFile struct {
	RX, RZ int
	Path   string
	Legacy bool // true for .mcr (Region), false for .mca (Anvil)
}

var regionFileRe = regexp.MustCompile(`^r\.(-?[0-9]+)\.(-?[0-9]+)\.(mca|mcr)$`)

// Regions enumerates the region files present in the dimension's region/
// directory. When both an .mca and .mcr file exist for the same
// coordinates, the .mca (Anvil) entry wins over the legacy .mcr one.
func (d *Dimension) Regions() ([]RegionFile, error) {
	dir := filepath.Join(d.dir, "region")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, xerrors.Errorf("world: enumerating regions: %w", err)
	}

	byCoord := make(map[[2]int]RegionFile)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := regionFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		rx, _ := strconv.Atoi(m[1])
		rz, _ := strconv.Atoi(m[2])
		legacy := m[3] == "mcr"
		key := [2]int{rx, rz}
		if existing, ok := byCoord[key]; ok && !existing.Legacy {
			continue // an .mca entry for this coordinate already won
		}
		byCoord[key] = RegionFile{RX: rx, RZ: rz, Path: filepath.Join(dir, e.Name()), Legacy: legacy}
	}

	out := make([]RegionFile, 0, len(byCoord))
	for _, rf := range byCoord {
		out = append(out, rf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RX != out[j].RX {
			return out[i].RX < out[j].RX
		}
		return out[i].RZ < out[j].RZ
	})
	return out, nil
}

// StatRegions is Regions followed by a concurrent Stat of every file, bounded
// to workers goroutines, so a caller building an index over a large world
// doesn't serialize on directory metadata round-trips.
func (d *Dimension) StatRegions(workers int) ([]os.FileInfo, error) {
	if workers < 1 {
		workers = 1
	}

	files, err := d.Regions()
	if err != nil {
		return nil, err
	}
	infos := make([]os.FileInfo, len(files))

	eg, _ := errgroup.WithContext(context.Background())
	jobs := make(chan int)
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			for idx := range jobs {
				info, err := os.Stat(files[idx].Path)
				if err != nil {
					return xerrors.Errorf("world: stat %s: %w", files[idx].Path, err)
				}
				infos[idx] = info
			}
			return nil
		})
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

// euclidDiv is floor division: unlike Go's truncating /, it rounds toward
// negative infinity so that, paired with region.euclidMod, every integer
// decomposes as a*n + b with 0<=b<n.
func euclidDiv(a, n int) int {
	q := a / n
	if a%n < 0 {
		q--
	}
	return q
}

// Region opens the region file covering world chunk coordinates cx,cz.
func (d *Dimension) Region(cx, cz int) (*region.Region, error) {
	rx, rz := euclidDiv(cx, 32), euclidDiv(cz, 32)
	return d.RegionAt(rx, rz)
}

// RegionAt opens the region file at region coordinates rx,rz directly.
func (d *Dimension) RegionAt(rx, rz int) (*region.Region, error) {
	files, err := d.Regions()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.RX == rx && f.RZ == rz {
			return region.Open(f.Path)
		}
	}
	return nil, xerrors.Errorf("world: no region file for (%d,%d)", rx, rz)
}

// Chunk opens the region covering cx,cz and reads the chunk's NBT document,
// closing the region handle afterward.
func (d *Dimension) Chunk(cx, cz int) (*nbt.Document, error) {
	reg, err := d.Region(cx, cz)
	if err != nil {
		return nil, err
	}
	defer reg.Close()

	doc, err := reg.ReadChunkDocument(cx, cz)
	if err != nil {
		return nil, xerrors.Errorf("world: reading chunk (%d,%d): %w", cx, cz, err)
	}
	return doc, nil
}
