// Hsbench measures hashset insert, lookup and remove throughput for each
// built-in hash algorithm.
//
// Usage:
//
//	go run ./cmd/hsbench --keys 1000000 --size 16 --algo all
//	go run ./cmd/hsbench --keys-file keys.bin --size 32 --algo xxh3 -v
//
// Flags:
//
//	--keys        Number of random keys to generate (default: 1,000,000)
//	--size        Key size in bytes (default: 16)
//	--algo        fnv1a, xxhash, xxh3, murmur3 or all (default: all)
//	--keys-file   Read keys from a file of concatenated --size byte records
//	--parallel    Benchmark algorithms concurrently, one set per goroutine
//	--cpuprofile  Write a CPU profile of the benchmark phase
//	-v            Log every set growth
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/UPEV1sion/hashset"
)

var CLI struct {
	Keys       int    `help:"Number of random keys to generate." default:"1000000"`
	Size       int    `help:"Key size in bytes." default:"16"`
	Algo       string `help:"Hash algorithm to benchmark." default:"all" enum:"all,fnv1a,xxhash,xxh3,murmur3"`
	KeysFile   string `help:"Read keys from a file of concatenated fixed-size records." type:"existingfile"`
	Parallel   bool   `help:"Benchmark algorithms concurrently, one set per goroutine."`
	CPUProfile string `name:"cpuprofile" help:"Write a CPU profile of the benchmark phase to this file."`
	Verbose    bool   `short:"v" help:"Log every set growth."`
}

// result holds the measurements for one algorithm.
type result struct {
	algo       hashset.HashAlgorithmID
	inserted   int
	duplicates int
	removed    int
	insert     time.Duration
	query      time.Duration
	remove     time.Duration
	finalCap   int
}

func main() {
	kong.Parse(&CLI,
		kong.Name("hsbench"),
		kong.Description("Benchmark hashset operations per hash algorithm."),
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if err := run(context.Background()); err != nil {
		slog.Error("Benchmark failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if CLI.Size <= 0 {
		return fmt.Errorf("--size must be positive, got %d", CLI.Size)
	}

	algos := hashset.HashAlgorithms
	if CLI.Algo != "all" {
		id, err := hashset.ParseHashAlgorithm(CLI.Algo)
		if err != nil {
			return err
		}
		algos = []hashset.HashAlgorithmID{id}
	}

	var ks *keySource
	var err error
	if CLI.KeysFile != "" {
		slog.Info("Mapping key file", "path", CLI.KeysFile, "record_size", CLI.Size)
		ks, err = mapKeys(CLI.KeysFile, CLI.Size)
	} else {
		slog.Info("Generating keys", "count", CLI.Keys, "size", CLI.Size)
		ks, err = generateKeys(CLI.Keys, CLI.Size)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := ks.Close(); err != nil {
			slog.Warn("Failed to release keys", "error", err)
		}
	}()

	if CLI.CPUProfile != "" {
		f, err := os.Create(CLI.CPUProfile)
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	baselineRSS := getMaxRSS()
	results := make([]result, len(algos))

	g, gctx := errgroup.WithContext(ctx)
	if !CLI.Parallel {
		g.SetLimit(1)
	}
	for i, algo := range algos {
		g.Go(func() error {
			logger := slog.Default().With("algo", algo.String())
			r, err := benchmark(gctx, algo, ks.keys, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", algo, err)
			}
			results[i] = r
			logger.Info("Finished", "insert", r.insert, "query", r.query, "remove", r.remove)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printResults(results, len(ks.keys), getMaxRSS()-baselineRSS)
	return nil
}

// benchmark inserts every key, looks every key up, then removes every other
// key, checking the set's answers against the expected counts.
func benchmark(ctx context.Context, algo hashset.HashAlgorithmID, keys [][]byte, logger *slog.Logger) (result, error) {
	r := result{algo: algo}
	s, err := hashset.New(hashset.WithHashAlgorithm(algo), hashset.WithLogger(logger))
	if err != nil {
		return r, err
	}
	defer func() { _ = s.Close() }()

	start := time.Now()
	for i, k := range keys {
		if i%contextCheckInterval == 0 && ctx.Err() != nil {
			return r, ctx.Err()
		}
		res, err := s.Insert(k)
		if err != nil {
			return r, fmt.Errorf("insert key %d: %w", i, err)
		}
		if res == hashset.AlreadyPresent {
			r.duplicates++
		} else {
			r.inserted++
		}
	}
	r.insert = time.Since(start)

	start = time.Now()
	for i, k := range keys {
		if i%contextCheckInterval == 0 && ctx.Err() != nil {
			return r, ctx.Err()
		}
		ok, err := s.Contains(k)
		if err != nil {
			return r, err
		}
		if !ok {
			return r, fmt.Errorf("key %d missing after insert", i)
		}
	}
	r.query = time.Since(start)

	start = time.Now()
	for i := 0; i < len(keys); i += 2 {
		if i%contextCheckInterval == 0 && ctx.Err() != nil {
			return r, ctx.Err()
		}
		res, err := s.Remove(keys[i])
		if err != nil {
			return r, fmt.Errorf("remove key %d: %w", i, err)
		}
		if res == hashset.Removed {
			r.removed++
		}
	}
	r.remove = time.Since(start)

	n, err := s.Len()
	if err != nil {
		return r, err
	}
	if want := r.inserted - r.removed; n != want {
		return r, fmt.Errorf("Len = %d after removals, want %d", n, want)
	}
	r.finalCap = s.Cap()
	return r, nil
}

// contextCheckInterval is how often the benchmark loops check for cancellation.
const contextCheckInterval = 10000

func mops(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds() / 1_000_000
}

func printResults(results []result, numKeys int, rss uint64) {
	fmt.Printf("\n")
	fmt.Printf("╔══════════╦════════════╦════════════╦════════════╦══════════╦════════════╗\n")
	fmt.Printf("║ Algo     ║ Insert     ║ Contains   ║ Remove     ║ Dups     ║ Final cap  ║\n")
	fmt.Printf("╠══════════╬════════════╬════════════╬════════════╬══════════╬════════════╣\n")
	for _, r := range results {
		fmt.Printf("║ %-8s ║ %6.2f M/s ║ %6.2f M/s ║ %6.2f M/s ║ %8d ║ %10d ║\n",
			r.algo,
			mops(numKeys, r.insert),
			mops(numKeys, r.query),
			mops((numKeys+1)/2, r.remove),
			r.duplicates,
			r.finalCap)
	}
	fmt.Printf("╚══════════╩════════════╩════════════╩════════════╩══════════╩════════════╝\n")
	fmt.Printf("Keys: %d   Peak RSS growth: %.1f MB\n", numKeys, float64(rss)/1_000_000)
}
