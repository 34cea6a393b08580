package nbt

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump writes a human readable rendering of the tag tree to w.
func Dump(w io.Writer, t Tag) {
	dumpConfig.Fdump(w, t)
}
