package ines

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteInfos writes a human readable summary of the header.
func (hdr *Header) WriteInfos(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	row := func(name string, val any) {
		fmt.Fprintf(tw, "%s:\t%v\n", name, val)
	}

	row("Format", hdr.Format)
	row("PRG ROM", byteSize(hdr.PRGROMSize))
	if hdr.CHRROMSize == 0 {
		row("CHR ROM", "none (CHR RAM)")
	} else {
		row("CHR ROM", byteSize(hdr.CHRROMSize))
	}
	row("Mapper", hdr.Mapper)
	if hdr.IsNES20() {
		row("Submapper", hdr.Submapper)
	}
	row("Mirroring", hdr.Mirroring)
	row("Trainer", yesno(hdr.HasTrainer))
	row("TV system", hdr.TVSystem)
	row("PRG RAM", byteSize(hdr.PRGRAMSize))
	row("PRG RAM present", yesno(hdr.PRGRAMPresent))
	if hdr.IsNES20() {
		row("PRG NVRAM", byteSize(hdr.PRGNVRAMSize))
		row("CHR RAM", byteSize(hdr.CHRRAMSize))
		row("CHR NVRAM", byteSize(hdr.CHRNVRAMSize))
	} else {
		row("Bus conflicts", yesno(hdr.BusConflicts))
	}

	return tw.Flush()
}

func yesno(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// byteSize formats a size in bytes, using KiB/MiB units when the size is an
// exact multiple.
type byteSize uint64

func (sz byteSize) String() string {
	switch {
	case sz == 0:
		return "0"
	case sz%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", sz>>20)
	case sz%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", sz>>10)
	}
	return fmt.Sprintf("%d bytes", uint64(sz))
}
