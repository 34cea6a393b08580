package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
	"github.com/Julian-Alberts/mc-map-reader/nbt"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

var headerCommand = &cli.Command{
	Name:      "header",
	Usage:     "list the populated slots of a region file",
	ArgsUsage: "<region.mca>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.ShowCommandHelp(c, c.Command.Name)
		}
		reader, err := anvil.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer reader.Close()

		out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(out, "X\tZ\tSECTOR\tCOUNT\tMODIFIED")
		for _, info := range reader.Header().Populated() {
			fmt.Fprintf(out, "%d\t%d\t%d\t%d\t%s\n", info.X(), info.Z(), info.SectorOffset, info.SectorCount, info.ModTime().Format("2006-01-02 15:04:05"))
		}
		return out.Flush()
	},
}

var chunkCommand = &cli.Command{
	Name:      "chunk",
	Usage:     "decode one chunk of a region file",
	ArgsUsage: "<region.mca> <x> <z>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "raw", Usage: "print the NBT tree instead of the decoded chunk"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 3 {
			return cli.ShowCommandHelp(c, c.Command.Name)
		}
		x, errX := strconv.Atoi(c.Args().Get(1))
		z, errZ := strconv.Atoi(c.Args().Get(2))
		if errX != nil || errZ != nil {
			return fmt.Errorf("chunk coordinates must be integers, got %q %q", c.Args().Get(1), c.Args().Get(2))
		}

		reader, err := anvil.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer reader.Close()

		if c.Bool("raw") {
			root, err := reader.ReadChunk(x, z)
			if err != nil {
				return err
			}
			nbt.Dump(os.Stdout, root)
			return nil
		}

		chunk, err := reader.DecodeChunk(x, z)
		if err != nil {
			if path := schema.FieldPath(err); path != "" {
				return fmt.Errorf("chunk %d,%d: field %s: %w", x, z, path, err)
			}
			return err
		}
		data, err := json.MarshalIndent(chunk, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Println(string(data))
		return err
	},
}
