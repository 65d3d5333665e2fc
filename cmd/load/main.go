// Command load drives put, list and delete cycles against a running
// service and reports latency percentiles.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type summary struct {
	TotalRequests int     `json:"total_requests"`
	Failures      int     `json:"failures"`
	Concurrency   int     `json:"concurrency"`
	DurationSec   float64 `json:"duration_sec"`
	ReqPerSec     float64 `json:"req_per_sec"`
	MeanMs        float64 `json:"mean_ms"`
	MaxMs         float64 `json:"max_ms"`
	P50Ms         float64 `json:"p50_ms"`
	P90Ms         float64 `json:"p90_ms"`
	P99Ms         float64 `json:"p99_ms"`
}

func main() {
	var (
		baseURL   = flag.String("url", "http://127.0.0.1:8080", "service base URL")
		conns     = flag.Int("c", 20, "concurrency (goroutines)")
		cycles    = flag.Int("n", 500, "put/list/delete cycles per goroutine")
		tables    = flag.Int("tables", 5, "number of distinct tables the workers spread over")
		sleepMs   = flag.Int("sleep", 0, "ms sleep between cycles per goroutine")
		statsMode = flag.Bool("stats", false, "record per-request latency and print p50/p90/p99")
	)
	flag.Parse()
	tableCount := *tables
	if tableCount < 1 {
		tableCount = 1
	}

	// Tuned transport for connection reuse under load.
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConnsPerHost: max(*conns, 100),
			MaxConnsPerHost:     max(*conns, 100),
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: 30 * time.Second,
	}

	var (
		mu        sync.Mutex
		requests  int
		failures  int
		durations []float64 // ms
	)

	// do issues one request, retrying transport errors with backoff.
	do := func(method, url, body string) {
		t0 := time.Now()
		var resp *http.Response
		var err error
		for attempt := 0; attempt < 4; attempt++ {
			var rd io.Reader
			if body != "" {
				rd = strings.NewReader(body)
			}
			var req *http.Request
			req, err = http.NewRequest(method, url, rd)
			if err != nil {
				break
			}
			if body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			resp, err = client.Do(req)
			if err == nil {
				break
			}
			backoff := 50 * time.Millisecond << attempt
			backoff += time.Duration(rand.Int63n(int64(backoff/2) + 1))
			time.Sleep(backoff)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "request error: %v\n", err)
			mu.Lock()
			failures++
			mu.Unlock()
			return
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		mu.Lock()
		requests++
		if *statsMode {
			durations = append(durations, time.Since(t0).Seconds()*1000)
		}
		mu.Unlock()
	}

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *conns; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			item := fmt.Sprintf("item%d", w)
			table := fmt.Sprintf("table%d", w%tableCount)
			for i := 0; i < *cycles; i++ {
				id := uuid.NewString()
				body := fmt.Sprintf(`{"item_id": "%s", "table_id": "%s"}`, item, table)
				do(http.MethodPut, *baseURL+"/order/"+id, body)
				do(http.MethodGet, *baseURL+"/orders?table_id="+table, "")
				do(http.MethodDelete, *baseURL+"/order/"+id, "")
				if *sleepMs > 0 {
					time.Sleep(time.Duration(*sleepMs) * time.Millisecond)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start).Seconds()

	if !*statsMode {
		fmt.Printf("done: requests=%d failures=%d concurrency=%d duration=%.2fs req/s=%.2f\n",
			requests, failures, *conns, elapsed, float64(requests)/elapsed)
		return
	}

	sort.Float64s(durations)
	var sum, maxMs float64
	for _, v := range durations {
		sum += v
		if v > maxMs {
			maxMs = v
		}
	}
	mean := 0.0
	if len(durations) > 0 {
		mean = sum / float64(len(durations))
	}

	// nearest-rank percentile
	p := func(q float64) float64 {
		if len(durations) == 0 {
			return 0
		}
		idx := int(math.Floor(q*float64(len(durations)-1) + 0.5))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(durations) {
			idx = len(durations) - 1
		}
		return durations[idx]
	}

	s := summary{
		TotalRequests: requests,
		Failures:      failures,
		Concurrency:   *conns,
		DurationSec:   elapsed,
		ReqPerSec:     float64(requests) / elapsed,
		MeanMs:        mean,
		MaxMs:         maxMs,
		P50Ms:         p(0.50),
		P90Ms:         p(0.90),
		P99Ms:         p(0.99),
	}

	fmt.Printf("SUMMARY: requests=%d failures=%d concurrency=%d duration=%.2fs req/s=%.2f\n",
		s.TotalRequests, s.Failures, s.Concurrency, s.DurationSec, s.ReqPerSec)
	fmt.Printf("LATENCY(ms): mean=%.3f max=%.3f p50=%.3f p90=%.3f p99=%.3f\n",
		s.MeanMs, s.MaxMs, s.P50Ms, s.P90Ms, s.P99Ms)

	js, _ := json.MarshalIndent(s, "", "  ")
	fmt.Printf("\nJSON:\n%s\n", js)
}
