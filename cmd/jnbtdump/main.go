// Command jnbtdump is a thin inspection tool over the jnbt packages: it
// prints a parsed NBT document tree, lists a region file's chunk table, or
// runs a region integrity scan.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/xerrors"

	"github.com/theJ8910/jnbt/nbt"
	"github.com/theJ8910/jnbt/region"
)

func printTree(w *os.File, n *nbt.Node, name string, depth int, color bool) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	label := name
	if label == "" {
		label = "<root>"
	}
	if color {
		label = "\x1b[36m" + label + "\x1b[0m"
	}

	switch n.Kind() {
	case nbt.KindCompound:
		fmt.Fprintf(w, "%s%s: Compound\n", indent, label)
		names, _ := n.Names()
		for _, childName := range names {
			child, _ := n.Child(childName)
			printTree(w, child, childName, depth+1, color)
		}
	case nbt.KindList:
		elemKind, _ := n.ElementKind()
		length, _ := n.Len()
		fmt.Fprintf(w, "%s%s: List<%s>(%d)\n", indent, label, elemKind, length)
		for i := 0; i < length; i++ {
			child, _ := n.Index(i)
			printTree(w, child, fmt.Sprintf("[%d]", i), depth+1, color)
		}
	default:
		fmt.Fprintf(w, "%s%s: %s = %s\n", indent, label, n.Kind(), formatScalar(n))
	}
}

func formatScalar(n *nbt.Node) string {
	switch n.Kind() {
	case nbt.KindByte:
		v, _ := n.AsByte()
		return fmt.Sprint(v)
	case nbt.KindShort:
		v, _ := n.AsShort()
		return fmt.Sprint(v)
	case nbt.KindInt:
		v, _ := n.AsInt()
		return fmt.Sprint(v)
	case nbt.KindLong:
		v, _ := n.AsLong()
		return fmt.Sprint(v)
	case nbt.KindFloat:
		v, _ := n.AsFloat()
		return fmt.Sprint(v)
	case nbt.KindDouble:
		v, _ := n.AsDouble()
		return fmt.Sprint(v)
	case nbt.KindString:
		v, _ := n.AsString()
		return fmt.Sprintf("%q", v)
	case nbt.KindByteArray:
		v, _ := n.AsByteArray()
		return fmt.Sprintf("<%d bytes>", len(v))
	case nbt.KindIntArray:
		v, _ := n.AsIntArray()
		return fmt.Sprintf("<%d ints>", len(v))
	case nbt.KindLongArray:
		v, _ := n.AsLongArray()
		return fmt.Sprintf("<%d longs>", len(v))
	default:
		return "?"
	}
}

func dump(args []string) error {
	fset := flag.NewFlagSet("dump", flag.ExitOnError)
	fset.Parse(args)
	if fset.NArg() != 1 {
		return xerrors.New("usage: jnbtdump dump <path>")
	}
	doc, err := nbt.LoadFile(fset.Arg(0))
	if err != nil {
		return err
	}
	color := isatty.IsTerminal(os.Stdout.Fd())
	printTree(os.Stdout, doc.Root, doc.RootName, 0, color)
	return nil
}

func listRegion(args []string) error {
	fset := flag.NewFlagSet("region", flag.ExitOnError)
	fset.Parse(args)
	if fset.NArg() != 1 {
		return xerrors.New("usage: jnbtdump region <path>")
	}
	reg, err := region.Open(fset.Arg(0))
	if err != nil {
		return err
	}
	defer reg.Close()

	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			if reg.HasChunk(x, z) {
				fmt.Printf("chunk (%d,%d): modified %d\n", x, z, reg.ModTime(x, z))
			}
		}
	}
	return nil
}

func scanRegion(args []string) error {
	fset := flag.NewFlagSet("scan", flag.ExitOnError)
	fset.Parse(args)
	if fset.NArg() != 1 {
		return xerrors.New("usage: jnbtdump scan <path>")
	}
	reg, err := region.Open(fset.Arg(0))
	if err != nil {
		return err
	}
	defer reg.Close()

	findings := reg.Scan()
	if len(findings) == 0 {
		fmt.Println("no integrity problems found")
		return nil
	}
	for _, f := range findings {
		fmt.Printf("%s at chunk (%d,%d): %s\n", f.Kind, f.ChunkX, f.ChunkZ, f.Detail)
	}
	return xerrors.Errorf("%d integrity problem(s) found", len(findings))
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		return xerrors.New("usage: jnbtdump <dump|region|scan> [options] <path>")
	}
	verb, rest := args[0], args[1:]
	switch verb {
	case "dump":
		return dump(rest)
	case "region":
		return listRegion(rest)
	case "scan":
		return scanRegion(rest)
	default:
		return xerrors.Errorf("unknown command %q", verb)
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
