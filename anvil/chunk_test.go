package anvil_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
	"github.com/Julian-Alberts/mc-map-reader/internal/nbttest"
	"github.com/Julian-Alberts/mc-map-reader/nbt"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

func chunkDoc(x, z int32) []byte {
	return nbttest.Document(nbt.Compound{
		"DataVersion": nbt.Int(3465),
		"xPos":        nbt.Int(x),
		"yPos":        nbt.Int(-4),
		"zPos":        nbt.Int(z),
		"Status":      nbt.String("minecraft:full"),
		"LastUpdate":  nbt.Long(10),
		"sections":    nbttest.ListOf(nbt.Compound{"Y": nbt.Byte(0)}),
		"block_entities": nbttest.ListOf(nbt.Compound{
			"id": nbt.String("minecraft:barrel"), "x": nbt.Int(x * 16), "y": nbt.Int(70), "z": nbt.Int(z * 16),
		}),
	})
}

func testRegion(t testing.TB) []byte {
	return nbttest.Region(
		nbttest.Chunk{Index: 0, Codec: byte(anvil.CompressionZlib), Data: zlibBytes(t, chunkDoc(0, 0)), Timestamp: 1},
		nbttest.Chunk{Index: 1, Codec: byte(anvil.CompressionGzip), Data: gzipBytes(t, chunkDoc(1, 0))},
		nbttest.Chunk{Index: 33, Codec: byte(anvil.CompressionNone), Data: chunkDoc(1, 1)},
		// unsupported codec
		nbttest.Chunk{Index: 40, Codec: 9, Data: []byte{1, 2, 3}},
		// valid NBT that is not a chunk
		nbttest.Chunk{Index: 1023, Codec: byte(anvil.CompressionZlib), Data: zlibBytes(t, nbttest.Document(nbt.Compound{"xPos": nbt.Int(0)}))},
	)
}

func TestDecodeChunk(t *testing.T) {
	file := testRegion(t)
	header, err := anvil.ParseHeader(file)
	if err != nil {
		t.Fatal(err)
	}

	chunk, err := anvil.DecodeChunk(file, *header.Info(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if chunk.X != 1 || chunk.Z != 1 || chunk.Status != schema.StatusFull {
		t.Fatalf("chunk %+v", chunk)
	}
	if _, ok := chunk.BlockEntities[0].Inventory(); !ok {
		t.Fatalf("barrel not decoded as inventory: %T", chunk.BlockEntities[0].Kind)
	}

	_, err = anvil.DecodeChunk(file, *header.Entry(40))
	if !errors.Is(err, anvil.ErrInvalidCompression) {
		t.Fatalf("slot 40: %v", err)
	}

	_, err = anvil.DecodeChunk(file, *header.Entry(1023))
	var missing *schema.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "DataVersion" {
		t.Fatalf("slot 1023: %v", err)
	}
}

func TestPayloadBounds(t *testing.T) {
	file := testRegion(t)

	tests := map[string]struct {
		info anvil.ChunkInfo
		want error
	}{
		"inside header":  {anvil.ChunkInfo{SectorOffset: 1, SectorCount: 1}, anvil.ErrTruncated},
		"past eof":       {anvil.ChunkInfo{SectorOffset: 500, SectorCount: 1}, anvil.ErrTruncated},
		"zero length":    {anvil.ChunkInfo{SectorOffset: 2, SectorCount: 1}, anvil.ErrInvalidChunkLength},
		"too few sector": {anvil.ChunkInfo{SectorOffset: 2, SectorCount: 1}, anvil.ErrInvalidChunkLength},
		"no sectors":     {anvil.ChunkInfo{SectorOffset: 2, SectorCount: 0}, anvil.ErrInvalidChunkLength},
	}

	zeroLength := append([]byte(nil), file...)
	binary.BigEndian.PutUint32(zeroLength[2*anvil.SectorSize:], 0)

	oversized := append([]byte(nil), file...)
	binary.BigEndian.PutUint32(oversized[2*anvil.SectorSize:], anvil.SectorSize+100)

	for name, tt := range tests {
		data := file
		switch name {
		case "zero length":
			data = zeroLength
		case "too few sector":
			data = oversized
		}
		if _, _, err := anvil.Payload(data, tt.info); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", name, err, tt.want)
		}
	}

	truncated := file[:2*anvil.SectorSize+10]
	header, _ := anvil.ParseHeader(file)
	if _, _, err := anvil.Payload(truncated, *header.Entry(0)); !errors.Is(err, anvil.ErrTruncated) {
		t.Errorf("truncated file: %v", err)
	}
}

func TestExternalChunk(t *testing.T) {
	doc := chunkDoc(0, 0)
	file := nbttest.Region(nbttest.Chunk{Index: 0, Codec: 0x80 | byte(anvil.CompressionZlib)})
	header, _ := anvil.ParseHeader(file)

	if _, err := anvil.DecodeChunk(file, *header.Entry(0)); !errors.Is(err, anvil.ErrExternalChunk) {
		t.Fatalf("without loader: %v", err)
	}

	save, err := anvil.DecodeRegion(file, anvil.WithExternalLoader(func(info anvil.ChunkInfo) ([]byte, error) {
		return zlibBytes(t, doc), nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if save.Chunk(0, 0) == nil {
		t.Fatalf("external chunk not decoded: %v", save.Err())
	}
}

func TestDecodeRegionIsolatesFailures(t *testing.T) {
	save, err := anvil.DecodeRegion(testRegion(t))
	if err != nil {
		t.Fatal(err)
	}
	if save.Len() != 3 {
		t.Fatalf("decoded %d chunks", save.Len())
	}
	if save.Chunk(0, 0) == nil || save.Chunk(1, 0) == nil || save.Chunk(1, 1) == nil {
		t.Fatal("missing chunk")
	}
	if save.Chunks[40] != nil || save.Chunks[1023] != nil {
		t.Fatal("failed slots hold a chunk")
	}
	if len(save.Failures) != 2 || save.Failures[0].Info.Index != 40 || save.Failures[1].Info.Index != 1023 {
		t.Fatalf("failures %v", save.Failures)
	}
	if !errors.Is(save.Err(), anvil.ErrInvalidCompression) || !errors.Is(save.Err(), schema.ErrMissingField) {
		t.Fatalf("Err() = %v", save.Err())
	}
}

func TestDecodeRegionParallelMatchesSequential(t *testing.T) {
	file := testRegion(t)
	seq, err := anvil.DecodeRegion(file)
	if err != nil {
		t.Fatal(err)
	}
	par, err := anvil.DecodeRegion(file, anvil.WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seq.Chunks, par.Chunks) {
		t.Fatal("parallel decode differs from sequential decode")
	}
	if len(seq.Failures) != len(par.Failures) {
		t.Fatalf("failures %d vs %d", len(seq.Failures), len(par.Failures))
	}
	for i := range seq.Failures {
		if seq.Failures[i].Info != par.Failures[i].Info {
			t.Fatalf("failure %d: %+v vs %+v", i, seq.Failures[i].Info, par.Failures[i].Info)
		}
	}
}

func TestDecodeRegionTruncatedHeader(t *testing.T) {
	if _, err := anvil.DecodeRegion(make([]byte, 100)); !errors.Is(err, anvil.ErrTruncatedHeader) {
		t.Fatalf("got %v", err)
	}
}

func TestDecodeEntityRegion(t *testing.T) {
	doc := nbttest.Document(nbt.Compound{
		"DataVersion": nbt.Int(3465),
		"Position":    nbt.IntArray{3, -2},
		"Entities": nbttest.ListOf(nbt.Compound{
			"id":  nbt.String("minecraft:cow"),
			"Pos": nbttest.ListOf(nbt.Double(48), nbt.Double(70), nbt.Double(-20)),
		}),
	})
	file := nbttest.Region(nbttest.Chunk{Index: 3 + 30*32, Codec: byte(anvil.CompressionZlib), Data: zlibBytes(t, doc)})

	save, err := anvil.DecodeEntityRegion(file)
	if err != nil {
		t.Fatal(err)
	}
	chunk := save.Chunk(3, 30)
	if chunk == nil || chunk.Position != [2]int32{3, -2} || len(chunk.Entities) != 1 || chunk.Entities[0].ID != "minecraft:cow" {
		t.Fatalf("entity chunk %+v (%v)", chunk, save.Err())
	}
}

func TestReadFileErrors(t *testing.T) {
	_, err := anvil.DecodeRegionFile(filepath.Join(t.TempDir(), "r.0.0.mca"))
	var readErr *anvil.ReadError
	if !errors.As(err, &readErr) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}

func TestReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")
	if err := os.WriteFile(path, testRegion(t), 0o644); err != nil {
		t.Fatal(err)
	}

	reader, err := anvil.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	if !reader.ChunkExists(1, 0) || reader.ChunkExists(5, 5) {
		t.Fatal("ChunkExists disagrees with the header")
	}
	chunk, err := reader.DecodeChunk(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if chunk.X != 1 || chunk.Z != 0 {
		t.Fatalf("chunk %d,%d", chunk.X, chunk.Z)
	}
	if _, err := reader.ReadChunk(5, 5); !errors.Is(err, anvil.ErrNoChunk) {
		t.Fatalf("missing chunk: %v", err)
	}
	if _, err := reader.ReadChunk(8, 1); !errors.Is(err, anvil.ErrInvalidCompression) {
		t.Fatalf("slot 40: %v", err)
	}
}

// malformedRegion has slot 0 pointing into the timestamp table, which holds a
// plausible payload prefix, and slot 1 with no sectors and a huge length.
func malformedRegion() []byte {
	file := make([]byte, 3*anvil.SectorSize)
	binary.BigEndian.PutUint32(file[0:], 1<<8|1)
	binary.BigEndian.PutUint32(file[4:], 2<<8|0)
	binary.BigEndian.PutUint32(file[anvil.SectorSize:], 1)
	file[anvil.SectorSize+4] = byte(anvil.CompressionNone)
	binary.BigEndian.PutUint32(file[2*anvil.SectorSize:], 0xFFFFFFFF)
	file[2*anvil.SectorSize+4] = byte(anvil.CompressionNone)
	return file
}

func TestReaderMatchesPayloadBounds(t *testing.T) {
	file := malformedRegion()
	header, err := anvil.ParseHeader(file)
	if err != nil {
		t.Fatal(err)
	}
	reader, err := anvil.NewReader(bytes.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x    int
		want error
	}{
		{x: 0, want: anvil.ErrTruncated},
		{x: 1, want: anvil.ErrInvalidChunkLength},
	}
	for _, tt := range tests {
		_, decodeErr := anvil.DecodeChunk(file, *header.Info(tt.x, 0))
		_, readErr := reader.ReadChunk(tt.x, 0)
		if !errors.Is(decodeErr, tt.want) || !errors.Is(readErr, tt.want) {
			t.Errorf("slot %d: DecodeChunk %v, ReadChunk %v, want %v", tt.x, decodeErr, readErr, tt.want)
		}
	}
}

func TestReaderExternalChunk(t *testing.T) {
	dir := t.TempDir()
	file := nbttest.Region(nbttest.Chunk{Index: 0, Codec: 0x80 | byte(anvil.CompressionZlib)})
	if err := os.WriteFile(filepath.Join(dir, "r.-1.2.mca"), file, 0o644); err != nil {
		t.Fatal(err)
	}

	reader, err := anvil.Open(filepath.Join(dir, "r.-1.2.mca"))
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	var readErr *anvil.ReadError
	if _, err := reader.ReadChunk(0, 0); !errors.As(err, &readErr) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("without .mcc file: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "c.-32.64.mcc"), zlibBytes(t, chunkDoc(-32, 64)), 0o644); err != nil {
		t.Fatal(err)
	}
	chunk, err := reader.DecodeChunk(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if chunk.X != -32 || chunk.Z != 64 {
		t.Fatalf("chunk %d,%d", chunk.X, chunk.Z)
	}

	reader.External = nil
	if _, err := reader.ReadChunk(0, 0); !errors.Is(err, anvil.ErrExternalChunk) {
		t.Fatalf("without loader: %v", err)
	}
}
