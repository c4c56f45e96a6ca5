package memory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/olorin/nagiosplugin"

	"github.com/yarncheck/check-yarn-rm/internal/jmx"
)

func testClient(t *testing.T, body string) *jmx.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}
	return jmx.NewClient(u.Hostname(), port)
}

func memoryBody(used, max, committed int64) string {
	return fmt.Sprintf(`{
		"beans": [{
			"name": "java.lang:type=Memory",
			"HeapMemoryUsage": {"used": %d, "max": %d, "committed": %d},
			"NonHeapMemoryUsage": {"used": 50000000, "max": 100000000, "committed": 60000000}
		}]
	}`, used, max, committed)
}

func mustRange(t *testing.T, spec string) *nagiosplugin.Range {
	t.Helper()
	r, err := nagiosplugin.ParseRange(spec)
	if err != nil {
		t.Fatalf("parse range %q: %v", spec, err)
	}
	return r
}

func TestRunHeapStatuses(t *testing.T) {
	tests := []struct {
		name     string
		used     int64
		expected nagiosplugin.Status
		prefix   string
	}{
		{"ok at warning boundary", 800000000, nagiosplugin.OK, "80.00% heap used"},
		{"warning between thresholds", 850000000, nagiosplugin.WARNING, "85.00% heap used"},
		{"critical above threshold", 950000000, nagiosplugin.CRITICAL, "95.00% heap used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, memoryBody(tt.used, 1000000000, 900000000))

			result, err := Run(context.Background(), client, Heap, mustRange(t, "80"), mustRange(t, "90"))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if result.Status != tt.expected {
				t.Errorf("expected status %v, got %v", tt.expected, result.Status)
			}
			if !strings.HasPrefix(result.Message, tt.prefix) {
				t.Errorf("expected message to start with %q, got %q", tt.prefix, result.Message)
			}
		})
	}
}

func TestRunHeapPerfdata(t *testing.T) {
	client := testClient(t, memoryBody(800000000, 1000000000, 900000000))

	result, err := Run(context.Background(), client, Heap, mustRange(t, "80"), mustRange(t, "90"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	values := map[string]float64{}
	for _, pd := range result.Perfdata {
		values[pd.Label] = pd.Value
	}
	expected := map[string]float64{
		"heap_used":      800000000,
		"heap_committed": 900000000,
		"heap_max":       1000000000,
		"heap_used_pct":  80,
	}
	for label, want := range expected {
		got, ok := values[label]
		if !ok {
			t.Errorf("missing perfdata %q", label)
			continue
		}
		if got != want {
			t.Errorf("perfdata %q = %v, want %v", label, got, want)
		}
	}
}

func TestRunRounding(t *testing.T) {
	client := testClient(t, memoryBody(123456789, 1000000000, 500000000))

	result, err := Run(context.Background(), client, Heap, mustRange(t, "80"), mustRange(t, "90"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(result.Message, "12.35% heap used") {
		t.Errorf("expected two-decimal rounding, got %q", result.Message)
	}
}

func TestRunNonHeap(t *testing.T) {
	client := testClient(t, memoryBody(800000000, 1000000000, 900000000))

	result, err := Run(context.Background(), client, NonHeap, mustRange(t, "80"), mustRange(t, "90"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != nagiosplugin.OK {
		t.Errorf("expected OK, got %v", result.Status)
	}
	if !strings.HasPrefix(result.Message, "50.00% non-heap used") {
		t.Errorf("unexpected message %q", result.Message)
	}
	for _, pd := range result.Perfdata {
		if !strings.HasPrefix(pd.Label, "non_heap_") {
			t.Errorf("unexpected perfdata label %q", pd.Label)
		}
	}
}

func TestRunMissingField(t *testing.T) {
	client := testClient(t, `{"beans": [{"name": "java.lang:type=Memory", "HeapMemoryUsage": {"used": 1}}]}`)

	_, err := Run(context.Background(), client, Heap, mustRange(t, "80"), mustRange(t, "90"))
	if err == nil {
		t.Fatal("expected error for missing max field")
	}
	if !strings.Contains(err.Error(), "has no field") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunNonPositiveMax(t *testing.T) {
	client := testClient(t, `{"beans": [{"name": "java.lang:type=Memory",
		"HeapMemoryUsage": {"used": 1, "max": -1, "committed": 1}}]}`)

	_, err := Run(context.Background(), client, Heap, mustRange(t, "80"), mustRange(t, "90"))
	if err == nil {
		t.Fatal("expected error for non-positive max")
	}
}

func TestGetDescription(t *testing.T) {
	heap := GetDescription(Heap)
	if heap.Name != "heap-used" {
		t.Errorf("unexpected name %q", heap.Name)
	}
	if heap.MBean != MBean {
		t.Errorf("unexpected mbean %q", heap.MBean)
	}

	nonHeap := GetDescription(NonHeap)
	if nonHeap.Name != "non-heap-used" {
		t.Errorf("unexpected name %q", nonHeap.Name)
	}
}
