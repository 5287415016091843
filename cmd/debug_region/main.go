package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"world-merger/core/region"
)

// Dumps the raw header of a region file, including entries Decode rejects.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <file.mca>", os.Args[0])
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	entries, err := region.ReadHeader(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== %s: %d bytes, %d sectors ===\n", os.Args[1], len(data), len(data)/region.SectorSize)

	var used []region.HeaderEntry
	for _, e := range entries {
		if !e.Empty() {
			used = append(used, e)
		}
	}
	fmt.Printf("Occupied slots: %d\n", len(used))

	sort.Slice(used, func(i, j int) bool {
		return used[i].Offset < used[j].Offset
	})

	var prevEnd uint32
	for _, e := range used {
		end := e.Offset + uint32(e.Sectors)
		status := "ok"
		switch {
		case e.Offset < region.HeaderSectors:
			status = "OFFSET INSIDE HEADER"
		case int(end)*region.SectorSize > len(data):
			status = "PAST END OF FILE"
		case e.Offset < prevEnd:
			status = "OVERLAPS PREVIOUS"
		}
		fmt.Printf("slot=%4d offset=%6d sectors=%3d timestamp=%d %s\n", e.Slot, e.Offset, e.Sectors, e.Timestamp, status)
		if end > prevEnd {
			prevEnd = end
		}
	}

	if _, err := region.Decode(data); err != nil {
		fmt.Printf("Decode: %v\n", err)
	} else {
		fmt.Println("Decode: ok")
	}
}
