package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	BaseURL     string
	Total       int
	Rate        int
	Concurrency int
	FilterPct   int
}

func parseFlags() *Config {
	c := &Config{}
	flag.StringVar(&c.BaseURL, "base-url", "", "Service base URL, e.g. http://localhost:8080 (required)")
	flag.IntVar(&c.Total, "total", 10000, "Total requests")
	flag.IntVar(&c.Rate, "rate", 2000, "Requests per second")
	flag.IntVar(&c.Concurrency, "concurrency", 0, "Worker count (0=auto)")
	flag.IntVar(&c.FilterPct, "filter-percent", 50, "Percent of requests carrying filter params")
	flag.Parse()

	if c.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: -base-url is required")
		flag.Usage()
		os.Exit(1)
	}

	if c.Concurrency == 0 {
		c.Concurrency = c.Rate / 20 // Auto-scale workers
		if c.Concurrency < 50 {
			c.Concurrency = 50
		}
	}

	if c.FilterPct > 100 {
		c.FilterPct = 100
	} else if c.FilterPct < 0 {
		c.FilterPct = 0
	}

	return c
}

type Stats struct {
	ok      uint64
	errors  uint64
	latency int64 // microseconds
}

func (s *Stats) AddOK(duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK := ok - lastOK
			curErr := errs - lastErr
			lastOK, lastErr = ok, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curErr, avgLat, ok)
		}
	}
}

func main() {
	cfg := parseFlags()
	stats := &Stats{}

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Rate=%d/s Total=%d Workers=%d", cfg.BaseURL, cfg.Rate, cfg.Total, cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stats.StartLogger(ctx)

	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rngs := make([]*rand.Rand, cfg.Concurrency)
	for i := 0; i < cfg.Concurrency; i++ {
		rngs[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(client, cfg, jobs, stats, rngs[i], &wg)
	}

	// Rate limiter
	remaining := cfg.Total
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total Errors: %d", atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.errors))
}

func startWorker(client *http.Client, cfg *Config, jobs <-chan struct{}, stats *Stats, rng *rand.Rand, wg *sync.WaitGroup) {
	defer wg.Done()

	for range jobs {
		target := pickTarget(cfg, rng)
		start := time.Now()

		if err := fetch(client, target); err != nil {
			stats.AddError()
		} else {
			stats.AddOK(time.Since(start))
		}
	}
}

func fetch(client *http.Client, target string) error {
	resp, err := client.Get(target)
	if err != nil {
		return err
	}

	// Drain the body so the connection can be reused (Keep-Alive)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return nil
}

var (
	endpoints = []string{"/api/dashboard", "/api/records", "/api/records/export"}
	clinics   = []string{"North", "South", "Central", "East"}
	doctors   = []string{"Dr. Kaya", "Dr. Demir", "Dr. Aydin"}
)

func pickTarget(cfg *Config, rng *rand.Rand) string {
	endpoint := endpoints[rng.Intn(len(endpoints))]
	target := cfg.BaseURL + endpoint

	if rng.Intn(100) >= cfg.FilterPct {
		return target
	}

	params := url.Values{}
	switch rng.Intn(3) {
	case 0:
		params.Set("clinic", clinics[rng.Intn(len(clinics))])
	case 1:
		params.Set("doctor", doctors[rng.Intn(len(doctors))])
	default:
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -1-rng.Intn(30))
		params.Set("from", from.Format("2006-01-02"))
		params.Set("to", to.Format("2006-01-02"))
	}
	return target + "?" + params.Encode()
}
