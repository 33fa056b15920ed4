package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"GogDB/app/dal/catalog"
)

// Copies a crawler output directory into a pebble catalog for the indexer.
// Usage:
//
//	go run ./tools/catalogimport -src ./data/catalog -dst ./data/catalog.pebble
func main() {
	src := flag.String("src", "", "crawler output directory (ids.json, products/<id>/...)")
	dst := flag.String("dst", "", "pebble catalog directory to write")
	verify := flag.Bool("verify", true, "re-read the id set from the pebble catalog after import")
	flag.Parse()

	if *src == "" || *dst == "" {
		log.Fatal("-src and -dst are required")
	}

	from, err := catalog.NewFileStore(*src)
	if err != nil {
		log.Fatalf("open source catalog: %v", err)
	}
	to, err := catalog.OpenPebbleStore(*dst)
	if err != nil {
		log.Fatalf("open pebble catalog: %v", err)
	}
	defer to.Close()

	ctx := context.Background()
	stats, err := catalog.Import(ctx, from, to)
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	if *verify {
		ids, err := to.ListIds(ctx)
		if err != nil {
			log.Fatalf("verify ids: %v", err)
		}
		if len(ids) < stats.Ids {
			log.Fatalf("verify ids: expected at least %d, found %d", stats.Ids, len(ids))
		}
	}
	fmt.Printf("Imported %d ids, %d products, %d changelogs.\n", stats.Ids, stats.Products, stats.Changelogs)
}
