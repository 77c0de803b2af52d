package main

import (
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func withCLIArgs(t *testing.T, args []string, fn func()) {
	t.Helper()

	oldArgs := os.Args
	oldCommandLine := flag.CommandLine

	os.Args = append([]string{"loadtest"}, args...)
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flag.CommandLine = fs

	defer func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	}()

	fn()
}

// fakeStorefront отвечает так же, как витрина с пустой корзиной, и запоминает запросы.
type fakeStorefront struct {
	mu       sync.Mutex
	requests []string
}

func (f *fakeStorefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && (r.URL.Path == "/register" || r.URL.Path == "/login"):
		w.Header().Set("Location", "/home")
		w.WriteHeader(http.StatusFound)
	case r.Method == http.MethodPost && r.URL.Path == "/checkout":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Cart is empty"}`))
	case r.URL.Path == "/product/missing":
		w.WriteHeader(http.StatusNotFound)
	default:
		_, _ = w.Write([]byte("ok"))
	}
}

func (f *fakeStorefront) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func TestParseMode(t *testing.T) {
	for _, mode := range []loadMode{modeBrowse, modeReports, modeAccount, modeCheckout} {
		got, err := parseMode(" " + string(mode) + " ")
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := parseMode("create-pay")
	assert.ErrorContains(t, err, "unsupported mode")
}

func TestParseConfig(t *testing.T) {
	t.Run("count mode", func(t *testing.T) {
		withCLIArgs(t, []string{
			"-addr=http://localhost:8000/",
			"-total=12",
			"-concurrency=3",
			"-timeout=1500ms",
			"-mode=checkout",
			"-product-id=p-1",
		}, func() {
			cfg, err := parseConfig()
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8000", cfg.baseURL)
			assert.Equal(t, 12, cfg.total)
			assert.True(t, cfg.totalSet)
			assert.Equal(t, 3, cfg.concurrency)
			assert.Equal(t, 1500*time.Millisecond, cfg.timeout)
			assert.Equal(t, modeCheckout, cfg.mode)
			assert.Equal(t, "p-1", cfg.productID)
		})
	})

	t.Run("duration mode", func(t *testing.T) {
		withCLIArgs(t, []string{"-duration=10m"}, func() {
			cfg, err := parseConfig()
			require.NoError(t, err)
			assert.Equal(t, 10*time.Minute, cfg.duration)
			assert.False(t, cfg.totalSet)
			assert.Equal(t, modeBrowse, cfg.mode)
		})
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			args    []string
			wantErr string
		}{
			{args: []string{"-timeout=bad"}, wantErr: "parse timeout"},
			{args: []string{"-duration=bad"}, wantErr: "parse duration"},
			{args: []string{"-mode=bad"}, wantErr: "unsupported mode"},
			{args: []string{"-addr=localhost:8080"}, wantErr: "http(s) URL"},
			{args: []string{"-duration=-1s"}, wantErr: "duration must be >= 0"},
			{args: []string{"-total=0"}, wantErr: "total must be > 0"},
			{args: []string{"-duration=1m", "-total=0"}, wantErr: "explicitly set"},
			{args: []string{"-concurrency=0"}, wantErr: "concurrency must be > 0"},
			{args: []string{"-timeout=0s"}, wantErr: "timeout must be > 0"},
			{args: []string{"-mode=checkout"}, wantErr: "product-id is required"},
			{args: []string{"-email-domain= "}, wantErr: "email-domain is required"},
		}
		for _, tc := range tests {
			t.Run(tc.wantErr, func(t *testing.T) {
				withCLIArgs(t, tc.args, func() {
					_, err := parseConfig()
					assert.ErrorContains(t, err, tc.wantErr)
				})
			})
		}
	})
}

func TestDispatchJobs(t *testing.T) {
	t.Run("count mode", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{total: 5})

		var got []int
		for v := range jobs {
			got = append(got, v)
		}
		assert.True(t, slices.Equal(got, []int{0, 1, 2, 3, 4}), "unexpected jobs sequence: %v", got)
	})

	t.Run("duration mode", func(t *testing.T) {
		jobs := make(chan int, 32)
		go dispatchJobs(jobs, config{duration: 20 * time.Millisecond})

		count := 0
		for range jobs {
			count++
		}
		assert.Positive(t, count)
	})

	t.Run("duration with explicit max total", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{duration: time.Second, total: 3, totalSet: true})
		count := 0
		for range jobs {
			count++
		}
		assert.Equal(t, 3, count)
	})
}

func TestScenarioCalls(t *testing.T) {
	reports := domain.ReportCatalog()

	calls := scenarioCalls(config{mode: modeReports}, len(reports)+1, "run")
	require.Len(t, calls, 1)
	assert.Equal(t, "/aggregation/"+string(reports[1].Name), calls[0].path)

	calls = scenarioCalls(config{mode: modeAccount, emailDomain: "shop.test"}, 7, "run")
	require.Len(t, calls, 2)
	var form domain.RegistrationForm
	require.NoError(t, json.Unmarshal([]byte(calls[0].body), &form))
	assert.Equal(t, "load-run-7@shop.test", form.Email)
	assert.Contains(t, calls[1].body, "email=load-run-7%40shop.test")
	assert.Equal(t, http.StatusFound, calls[1].expect)

	calls = scenarioCalls(config{mode: modeCheckout, productID: "p 1"}, 0, "run")
	require.Len(t, calls, 3)
	assert.Equal(t, "/add_to_cart/p%201", calls[0].path)
	assert.Equal(t, http.StatusBadRequest, calls[2].expect)

	assert.Len(t, scenarioCalls(config{mode: modeBrowse}, 0, "run"), 1)
	assert.Len(t, scenarioCalls(config{mode: modeBrowse, productID: "p1"}, 0, "run"), 2)
}

func TestRunScenario(t *testing.T) {
	fake := &fakeStorefront{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	cfg := config{baseURL: srv.URL, timeout: time.Second, concurrency: 1, emailDomain: "shop.test", productID: "p1"}
	client := newHTTPClient(cfg)
	col := newCollector()

	for _, mode := range []loadMode{modeBrowse, modeReports, modeAccount, modeCheckout} {
		cfg.mode = mode
		require.NoError(t, runScenario(client, cfg, 0, "run", col), "mode %s", mode)
	}

	assert.Contains(t, fake.seen(), "POST /checkout")
	assert.Contains(t, fake.seen(), "POST /register")

	snap, ok := col.snapshot("scenario")
	require.True(t, ok)
	assert.Equal(t, int64(4), snap.Success)

	login, ok := col.snapshot("login")
	require.True(t, ok)
	assert.Equal(t, int64(1), login.Codes["302"], "redirects must not be followed")

	cfg.mode = modeBrowse
	cfg.productID = "missing"
	err := runScenario(client, cfg, 1, "run", col)
	assert.ErrorContains(t, err, "expected status 200, got 404")

	snap, _ = col.snapshot("scenario")
	assert.Equal(t, int64(1), snap.Codes["failed:product"])
}

func TestRunScenario_TransportError(t *testing.T) {
	srv := httptest.NewServer(&fakeStorefront{})
	url := srv.URL
	srv.Close()

	cfg := config{baseURL: url, timeout: 200 * time.Millisecond, concurrency: 1, mode: modeBrowse}
	col := newCollector()
	require.Error(t, runScenario(newHTTPClient(cfg), cfg, 0, "run", col))

	home, ok := col.snapshot("home")
	require.True(t, ok)
	assert.Equal(t, int64(1), home.Codes["transport_error"])
}

func TestCollectorAndReport(t *testing.T) {
	c := newCollector()
	c.record("scenario", 10*time.Millisecond, "ok", true)
	c.record("scenario", 20*time.Millisecond, "failed:home", false)
	c.record("home", 15*time.Millisecond, "200", true)

	snap, ok := c.snapshot("scenario")
	require.True(t, ok)
	assert.Equal(t, int64(2), snap.Calls)
	assert.Equal(t, int64(1), snap.Success)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(1), snap.Codes["failed:home"])

	r := c.buildReport(time.Now(), 2*time.Second)
	assert.Equal(t, int64(2), r.TotalScenarios)
	assert.Equal(t, int64(1), r.FailedScenarios)
	assert.Positive(t, r.RPS)
	assert.Contains(t, r.Methods, "home")
}

func TestCollectorRecordsOutcomeOfEveryCall(t *testing.T) {
	c := newCollector()
	c.record("home", time.Millisecond, "200", true)
	c.record("home", time.Millisecond, "500", false)
	c.record("home", time.Millisecond, "500", false)
	c.record("checkout", time.Millisecond, "500", false)

	home, ok := c.snapshot("home")
	require.True(t, ok)
	assert.Equal(t, int64(3), home.Calls)
	assert.Equal(t, int64(1), home.Success)
	assert.Equal(t, int64(2), home.Failed)

	checkout, ok := c.snapshot("checkout")
	require.True(t, ok)
	assert.Equal(t, int64(0), checkout.Success)
	assert.Equal(t, int64(1), checkout.Failed)
}

func TestUtilityFunctions(t *testing.T) {
	assert.InDelta(t, 0.25, ratio(1, 4), 1e-9)
	assert.Zero(t, ratio(1, 0))

	values := []float64{10, 20, 30, 40}
	summary := buildLatencySummary(values)
	assert.Positive(t, summary.P50)
	assert.Positive(t, summary.P95)
	assert.Equal(t, 40.0, summary.Max)
	assert.Positive(t, percentile(values, 95))

	assert.Equal(t, "count:50", runTarget(config{total: 50}))
	assert.Equal(t, "duration:2s", runTarget(config{duration: 2 * time.Second}))
	assert.Equal(t, "duration:2s,max-total:10", runTarget(config{duration: 2 * time.Second, total: 10, totalSet: true}))
}

func TestWriteJSONReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, writeJSONReport(path, report{TotalScenarios: 2, SuccessScenarios: 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(2), decoded.TotalScenarios)
	assert.Equal(t, int64(2), decoded.SuccessScenarios)

	assert.Error(t, writeJSONReport(".", report{}))
	assert.Error(t, writeJSONReport("../outside.json", report{}))
}

func TestPrintReport(t *testing.T) {
	r := report{
		TotalScenarios:   2,
		SuccessScenarios: 2,
		Methods: map[string]methodReport{
			"scenario": {Calls: 2, Success: 2},
			"checkout": {Calls: 2, Success: 2},
		},
	}

	out := captureStdout(t, func() {
		printReport(r, config{mode: modeCheckout, total: 2})
	})

	assert.Contains(t, out, "Load test summary")
	assert.Contains(t, out, "checkout: calls=2")
	assert.NotContains(t, out, "scenario: calls")
}

func TestMainSmoke(t *testing.T) {
	fake := &fakeStorefront{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "main-report.json")

	withCLIArgs(t, []string{
		"-addr=" + srv.URL,
		"-mode=reports",
		"-total=5",
		"-concurrency=2",
		"-timeout=2s",
		"-output=" + outPath,
	}, func() {
		main()
	})

	_, err := os.Stat(outPath)
	require.NoError(t, err, "expected report file from main")
	assert.Len(t, fake.seen(), 5)
	for _, req := range fake.seen() {
		assert.True(t, strings.HasPrefix(req, "GET /aggregation/"), req)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	_ = r.Close()

	return string(data)
}
