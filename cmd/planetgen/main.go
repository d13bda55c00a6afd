package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/codec"
	"github.com/xeekworx/planetgen/internal/core/lod"
	"github.com/xeekworx/planetgen/internal/core/observability/log"
	"github.com/xeekworx/planetgen/internal/core/planet"
	"github.com/xeekworx/planetgen/internal/core/property"
	"github.com/xeekworx/planetgen/internal/core/slot"
	"github.com/xeekworx/planetgen/pkg/concurrent"
)

func main() {
	// No .env file is fine; the system environment still applies.
	_ = godotenv.Load()

	var (
		seed          = flag.Int64("seed", 1, "primary seed of the first planet; planet i uses seed+i")
		variation     = flag.Int64("variation", 0, "variation seed applied to variation-flagged properties")
		count         = flag.Int("count", 1, "number of planets to generate")
		blueprintName = flag.String("blueprint", "", "force this blueprint instead of the weighted pick")
		formatName    = flag.String("format", "pretty", "output encoding: compact|pretty|escaped|base64")
		catalogPath   = flag.String("catalog", os.Getenv("PLANETGEN_CATALOG"), "blueprint catalog file (yaml or json); empty uses the built-in catalog")
	)
	flag.Parse()

	logger := log.New(log.LevelInfo)
	if err := run(logger, *seed, *variation, *count, *blueprintName, *formatName, *catalogPath); err != nil {
		logger.Error("generation failed", log.Error(err))
		os.Exit(1)
	}
}

func run(logger *log.Logger, seed, variation int64, count int, blueprintName, formatName, catalogPath string) error {
	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	reg := blueprint.NewRegistry(logger)
	if err = catalog.Apply(reg); err != nil {
		return err
	}

	eng, err := newEngine(logger, reg)
	if err != nil {
		return err
	}

	// The engine is cooperatively single-threaded, so planets resolve in
	// sequence; their documents encode concurrently.
	docs := make([]*codec.Document, 0, count)
	for i := 0; i < count; i++ {
		s := property.Seed{Primary: seed + int64(i), Variation: variation}
		p, err := eng.Spawn(s, blueprintName)
		if err != nil {
			return fmt.Errorf("seed %d: %w", s.Primary, err)
		}
		doc, err := p.Export()
		p.Destroy()
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	texts, err := concurrent.Map(context.Background(), docs,
		func(_ context.Context, doc *codec.Document) (string, error) {
			return codec.Encode(doc, format)
		})
	if err != nil {
		return err
	}

	for _, text := range texts {
		fmt.Println(text)
	}
	logger.Info("planets generated",
		log.Int("count", count),
		log.Int64("firstSeed", seed),
		log.String("format", format.String()))
	return nil
}

func loadCatalog(path string) (*blueprint.Catalog, error) {
	if path == "" {
		return blueprint.LoadYAML(strings.NewReader(defaultCatalog))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	if strings.HasSuffix(path, ".json") {
		return blueprint.LoadJSON(f)
	}
	return blueprint.LoadYAML(f)
}

func newEngine(logger *log.Logger, reg *blueprint.Registry) (*planet.Engine, error) {
	alloc := slot.NewAllocator(logger)
	for _, kind := range []slot.Kind{"surface", "clouds", "atmosphere", "ringTexture"} {
		if err := alloc.AddKind(kind, 4); err != nil {
			return nil, err
		}
	}
	return planet.NewEngine(planet.Config{
		Log:        logger,
		Blueprints: reg,
		Slots:      alloc,
		MeshLOD: &lod.Config{
			Levels:     []int{6, 5, 4, 3, 2},
			Thresholds: []float64{0.6, 0.4, 0.2, 0.05},
		},
		TextureLOD: &lod.Config{
			Levels:     []int{256, 512, 1024, 2048},
			Thresholds: []float64{0.6, 0.3, 0.1},
		},
		RingBlueprint: "ice ring",
	})
}
