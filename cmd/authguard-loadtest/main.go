package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	authguard "github.com/authguard/authguard"
)

func main() {
	var (
		keys        = flag.Int("keys", 100000, "number of distinct limiter keys")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (attempt + protect)")
		maxAttempts = flag.Int("max-attempts", 5, "attempt budget per key")
		window      = flag.Duration("window", 15*time.Minute, "sliding window length")
	)
	flag.Parse()

	if *keys <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "keys, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	guard, err := authguard.New().
		WithConfig(authguard.Config{
			RateLimit: authguard.RateLimitConfig{
				MaxAttempts:   *maxAttempts,
				Window:        *window,
				CleanupMaxAge: *window * 4,
			},
			Metrics: authguard.MetricsConfig{
				Enabled:                 true,
				EnableLatencyHistograms: true,
			},
		}).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	defer guard.Close()

	names := make([]string, *keys)
	for i := range names {
		names[i] = fmt.Sprintf("client-%d", i)
	}

	attemptStats := runAttemptPhase(ctx, guard, names, *ops, *concurrency)
	protectStats := runProtectPhase(ctx, guard, names, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("attempt", attemptStats)
	printStats("protect", protectStats)

	snapshot := guard.MetricsSnapshot()
	fmt.Printf("tracked keys=%d allowed=%d denied=%d resets=%d\n",
		guard.TrackedKeys(),
		snapshot.Counters[authguard.MetricAttemptAllowed],
		snapshot.Counters[authguard.MetricAttemptDenied],
		snapshot.Counters[authguard.MetricLimiterReset],
	)

	pruned := guard.Cleanup()
	fmt.Printf("cleanup pruned=%d remaining=%d\n", pruned, guard.TrackedKeys())
}

func runAttemptPhase(ctx context.Context, guard *authguard.Guard, names []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		denials   int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				key := names[r.Intn(len(names))]
				t0 := time.Now()
				allowed, err := guard.CanAttempt(ctx, key)
				d := time.Since(t0)
				if err != nil {
					fmt.Fprintf(os.Stderr, "attempt failed: %v\n", err)
					os.Exit(1)
				}
				if !allowed {
					atomic.AddInt64(&denials, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, denials)
}

var errUpstream = errors.New("duplicate key value violates unique constraint \"users_email_key\"")

func runProtectPhase(ctx context.Context, guard *authguard.Guard, names []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		refusals  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				key := names[r.Intn(len(names))]
				fail := r.Intn(4) == 0

				t0 := time.Now()
				res, _ := guard.Protect(ctx, key, authguard.Credentials{}, func(context.Context) error {
					if fail {
						return errUpstream
					}
					return nil
				})
				d := time.Since(t0)

				if !res.Allowed {
					atomic.AddInt64(&refusals, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, refusals)
}

type phaseStats struct {
	total   time.Duration
	ops     int
	denied  int64
	p50     time.Duration
	p95     time.Duration
	p99     time.Duration
	opsPerS float64
}

func computeStats(total time.Duration, samples []time.Duration, denied int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:   total,
		ops:     len(samples),
		denied:  denied,
		p50:     percentile(samples, 50),
		p95:     percentile(samples, 95),
		p99:     percentile(samples, 99),
		opsPerS: float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d denied=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.denied,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
