package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/pristineseas/psdb/pkg/parserpool"
)

// TestNew verifies pool creation with default and custom sizes.
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		jobsNum int
	}{
		{name: "default size (0 = NumCPU)", jobsNum: 0},
		{name: "custom size 4", jobsNum: 4},
		{name: "custom size 1", jobsNum: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := parserpool.New(tt.jobsNum)
			if pool == nil {
				t.Fatal("New returned nil")
			}
			defer pool.Close()

			// Verify pool works by parsing a simple name
			_, err := pool.Parse("Lutjanus bohar", nomcode.Zoological)
			if err != nil {
				t.Errorf("Parse failed: %v", err)
			}
		})
	}
}

// TestParse_ZoologicalCode verifies zoological name parsing.
func TestParse_ZoologicalCode(t *testing.T) {
	pool := parserpool.New(2)
	defer pool.Close()

	tests := []struct {
		name       string
		nameString string
		wantParsed bool
	}{
		{
			name:       "simple fish name",
			nameString: "Lutjanus bohar",
			wantParsed: true,
		},
		{
			name:       "name with author and year",
			nameString: "Chromis vanderbilti (Fowler, 1941)",
			wantParsed: true,
		},
		{
			name:       "trinomial",
			nameString: "Acanthurus nigrofuscus nigrofuscus",
			wantParsed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := pool.Parse(tt.nameString, nomcode.Zoological)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if result.Parsed != tt.wantParsed {
				t.Errorf("Parse result.Parsed = %v, want %v",
					result.Parsed, tt.wantParsed)
			}

			if tt.wantParsed && result.Canonical.Simple == "" {
				t.Errorf("Expected non-empty canonical for parsed name")
			}
		})
	}
}

// TestParse_BotanicalCode verifies botanical parsing for algae and
// seagrass names.
func TestParse_BotanicalCode(t *testing.T) {
	pool := parserpool.New(2)
	defer pool.Close()

	tests := []struct {
		name       string
		nameString string
		wantParsed bool
	}{
		{
			name:       "seagrass",
			nameString: "Thalassia hemprichii",
			wantParsed: true,
		},
		{
			name:       "alga with author",
			nameString: "Halimeda opuntia (L.) J.V.Lamouroux",
			wantParsed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := pool.Parse(tt.nameString, nomcode.Botanical)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if result.Parsed != tt.wantParsed {
				t.Errorf("Parse result.Parsed = %v, want %v",
					result.Parsed, tt.wantParsed)
			}
		})
	}
}

// TestParse_UnsupportedCode verifies error handling for codes the
// pool has no parsers for.
func TestParse_UnsupportedCode(t *testing.T) {
	pool := parserpool.New(2)
	defer pool.Close()

	_, err := pool.Parse("Lutjanus bohar", nomcode.Bacterial)
	if err == nil {
		t.Error("Expected error for unsupported nomenclatural code, got nil")
	}
}

// TestParse_Concurrent verifies the pool under concurrent load.
func TestParse_Concurrent(t *testing.T) {
	pool := parserpool.New(2)
	defer pool.Close()

	names := []string{
		"Lutjanus bohar",
		"Chromis vanderbilti",
		"Acanthurus olivaceus",
		"Caranx ignobilis",
		"Cephalopholis argus",
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := names[i%len(names)]
			result, err := pool.Parse(name, nomcode.Zoological)
			if err != nil {
				t.Errorf("Parse(%q) failed: %v", name, err)
				return
			}
			if !result.Parsed {
				t.Errorf("Parse(%q) did not parse", name)
			}
		}(i)
	}
	wg.Wait()
}
