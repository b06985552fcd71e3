package block

import "golang.org/x/xerrors"

// ErrUnsupportedDataVersion is returned when a modern (palette) section must
// be decoded but no DataVersion is available to select a packing variant,
// and the caller did not supply one via Options.DataVersionOverride.
var ErrUnsupportedDataVersion = xerrors.New("block: chunk has no DataVersion and none was overridden")
