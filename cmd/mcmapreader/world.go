package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
	"github.com/Julian-Alberts/mc-map-reader/export"
	"github.com/Julian-Alberts/mc-map-reader/schema"
	"github.com/Julian-Alberts/mc-map-reader/world"
)

var areaFlag = &cli.StringFlag{Name: "area", Usage: "chunk rectangle x1,z1,x2,z2"}

// parseArea reads the corners of an --area flag. An empty value is the
// whole world.
func parseArea(value string) (*anvil.Area, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("area %q: expected x1,z1,x2,z2", value)
	}
	var n [4]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("area %q: %w", value, err)
		}
		n[i] = v
	}
	area := anvil.NewArea(anvil.ChunkPos{X: n[0], Z: n[1]}, anvil.ChunkPos{X: n[2], Z: n[3]})
	return &area, nil
}

func openWorld(c *cli.Context) (*world.World, *anvil.Area, error) {
	if c.NArg() != 1 {
		return nil, nil, fmt.Errorf("%s needs exactly one world directory", c.Command.Name)
	}
	area, err := parseArea(c.String("area"))
	if err != nil {
		return nil, nil, err
	}
	cfg := loadedConfig(c)
	w, err := world.Open(c.Args().First(), world.Options{
		Workers:       cfg.Workers,
		CachedRegions: cfg.Cache.Regions,
		Logger:        logrus.StandardLogger(),
	})
	if err != nil {
		return nil, nil, err
	}
	return w, area, nil
}

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "write every decoded chunk as a JSON line",
	ArgsUsage: "<world>",
	Flags: []cli.Flag{
		areaFlag,
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout when empty"},
		&cli.BoolFlag{Name: "zstd", Usage: "write zstd compressed frames"},
	},
	Action: func(c *cli.Context) error {
		w, area, err := openWorld(c)
		if err != nil {
			return err
		}
		defer w.Close()

		out := os.Stdout
		if path := c.String("out"); path != "" {
			if out, err = os.Create(path); err != nil {
				return err
			}
			defer out.Close()
		}

		writer, err := export.NewWriter(out, export.Options{Zstd: c.Bool("zstd")})
		if err != nil {
			return err
		}

		chunks := 0
		err = w.Walk(c.Context, area, func(pos anvil.ChunkPos, chunk *schema.ChunkData) error {
			chunks++
			return writer.WriteChunk(pos, chunk)
		})
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		logrus.WithField("chunks", chunks).Info("dump finished")
		return err
	},
}

var containersCommand = &cli.Command{
	Name:      "containers",
	Usage:     "list block entities that hold items",
	ArgsUsage: "<world>",
	Flags: []cli.Flag{
		areaFlag,
		&cli.StringSliceFlag{Name: "id", Usage: "only list these block ids, such as minecraft:chest"},
	},
	Action: func(c *cli.Context) error {
		w, area, err := openWorld(c)
		if err != nil {
			return err
		}
		defer w.Close()

		ids := make(map[string]bool)
		for _, id := range c.StringSlice("id") {
			ids[id] = true
		}

		return w.Walk(c.Context, area, func(pos anvil.ChunkPos, chunk *schema.ChunkData) error {
			for _, be := range chunk.BlockEntities {
				inv, ok := be.Inventory()
				if !ok || (len(ids) > 0 && !ids[be.ID]) {
					continue
				}
				printContainer(be, inv)
			}
			return nil
		})
	},
}

func printContainer(be schema.BlockEntity, inv schema.InventoryBlock) {
	items := inv.Items()
	fmt.Printf("%s at %d %d %d: %d stacks\n", be.ID, be.X, be.Y, be.Z, len(items))
	for _, item := range items {
		slot := "-"
		if item.Slot != nil {
			slot = strconv.Itoa(int(*item.Slot))
		}
		fmt.Printf("  [%s] %dx %s\n", slot, item.Count, item.ID)
	}
	if cooking, ok := inv.(schema.CookingBlock); ok {
		fmt.Printf("  cooking %d/%d, burn time %d\n", cooking.CookTime(), cooking.CookTimeTotal(), cooking.BurnTime())
	}
}
