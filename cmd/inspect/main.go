package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/opaque"
	"github.com/wippyai/opaque/export"
	"github.com/wippyai/opaque/handle"
	"github.com/wippyai/opaque/registry"
)

// probe is the demo payload the inspector manages.
type probe struct {
	label string
	drops *atomic.Int64
}

func (p *probe) Drop() {
	if p.drops != nil {
		p.drops.Add(1)
	}
}

func main() {
	var (
		seed        = flag.Int("handles", 8, "Number of demo handles to seed")
		workers     = flag.Int("workers", 16, "Concurrent workers for the stress round")
		cycles      = flag.Int("cycles", 500, "Clone/drop cycles per worker")
		verbose     = flag.Bool("v", false, "Log registry activity")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		registry.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*seed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*seed, *workers, *cycles); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(seed, workers, cycles int) error {
	reg := registry.New()
	table := export.NewTable()
	var drops atomic.Int64

	ids := make([]export.ID, 0, seed)
	for i := 0; i < seed; i++ {
		h := handle.FromValueIn(reg, probe{label: fmt.Sprintf("probe-%d", i), drops: &drops})
		id, err := table.Put(h)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	fmt.Printf("Seeded %d handles (%d live ids, %d ownership blocks)\n", seed, table.Len(), reg.Len())
	fmt.Printf("Stress: %d workers x %d clone/drop cycles\n", workers, cycles)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				src, ok := table.Get(ids[(w+c)%len(ids)])
				if !ok {
					continue
				}
				id, err := table.Put(src.(opaque.Aliaser).NewRef())
				if err != nil {
					return
				}
				table.Drop(id)
			}
		}(w)
	}
	wg.Wait()

	fmt.Printf("\nAfter stress:\n")
	fmt.Printf("  live ids:         %d\n", table.Len())
	fmt.Printf("  ownership blocks: %d\n", reg.Len())
	fmt.Printf("  destructions:     %d\n", drops.Load())

	if err := table.Close(); err != nil {
		return err
	}

	fmt.Printf("\nAfter close:\n")
	fmt.Printf("  live ids:         %d\n", table.Len())
	fmt.Printf("  ownership blocks: %d\n", reg.Len())
	fmt.Printf("  destructions:     %d\n", drops.Load())

	if reg.Len() != 0 || drops.Load() != int64(seed) {
		return fmt.Errorf("leak detected: %d blocks alive, %d of %d destructions", reg.Len(), drops.Load(), seed)
	}
	fmt.Println("\nAll objects destroyed exactly once.")
	return nil
}
