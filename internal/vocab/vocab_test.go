package vocab

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultRegistryHasAllTiers(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"1.1", "1.2", "2.1", "2.2", "3.1", "3.2", "3.3",
		"4.1", "4.2", "4.3", "4.4", "5.1", "5.2", "5.3"}
	if got := r.Tiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tiers() = %v, want %v", got, want)
	}
}

func TestBandForUnknownTier(t *testing.T) {
	r := DefaultRegistry()
	if _, err := r.BandFor("9.9"); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("BandFor(9.9) = %v, want ErrUnknownTier", err)
	}
}

func TestCheckCleanText(t *testing.T) {
	r := DefaultRegistry()
	band, err := r.BandFor("2.2")
	if err != nil {
		t.Fatal(err)
	}

	if vs := Check("more juice. mama go.", band); len(vs) != 0 {
		t.Errorf("clean text flagged: %+v", vs)
	}
}

func TestCheckForbiddenToken(t *testing.T) {
	r := DefaultRegistry()
	band, err := r.BandFor("1.2")
	if err != nil {
		t.Fatal(err)
	}

	vs := Check("baby sees Quantum light.", band)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1: %+v", len(vs), vs)
	}
	if vs[0].Kind != KindForbiddenToken || vs[0].Token != "quantum" {
		t.Errorf("violation = %+v, want forbidden quantum", vs[0])
	}
}

func TestCheckWholeWordOnly(t *testing.T) {
	band := Band{Tier: "x", MaxSentenceWords: 20, ForbiddenTokens: []string{"network"}}

	// "networking" contains "network" but is a different word.
	if vs := Check("she was networking nicely", band); len(vs) != 0 {
		t.Errorf("compound word flagged: %+v", vs)
	}
	if vs := Check("the network hummed", band); len(vs) != 1 {
		t.Errorf("exact word not flagged: %+v", vs)
	}
}

func TestCheckMultiWordToken(t *testing.T) {
	band := Band{Tier: "x", MaxSentenceWords: 20, ForbiddenTokens: []string{"think about"}}

	if vs := Check("I think about dinner", band); len(vs) != 1 {
		t.Errorf("phrase not flagged: %+v", vs)
	}
}

func TestCheckSentenceComplexity(t *testing.T) {
	band := Band{Tier: "1.1", MaxSentenceWords: 3}

	vs := Check("warm milk now please mama. soft.", band)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1: %+v", len(vs), vs)
	}
	if vs[0].Kind != KindSentenceComplexity || vs[0].Words != 5 {
		t.Errorf("violation = %+v, want 5-word complexity", vs[0])
	}
}

func TestCheckDeterministic(t *testing.T) {
	r := DefaultRegistry()
	band, err := r.BandFor("3.1")
	if err != nil {
		t.Fatal(err)
	}

	text := "the quantum toy hummed with a neural glow across the room. I want that."
	first := Check(text, band)
	for i := 0; i < 5; i++ {
		if got := Check(text, band); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestCheckOrdering(t *testing.T) {
	band := Band{Tier: "x", MaxSentenceWords: 2, ForbiddenTokens: []string{"apple", "banana"}}

	vs := Check("banana apple pie. apple.", band)
	// First sentence: complexity, then apple, then banana (band order).
	if len(vs) != 4 {
		t.Fatalf("got %d violations, want 4: %+v", len(vs), vs)
	}
	if vs[0].Kind != KindSentenceComplexity {
		t.Errorf("first violation = %s, want complexity", vs[0].Kind)
	}
	if vs[1].Token != "apple" || vs[2].Token != "banana" {
		t.Errorf("token order = %s, %s; want apple, banana", vs[1].Token, vs[2].Token)
	}
	if vs[3].Sentence != "apple" {
		t.Errorf("last violation sentence = %q, want second sentence", vs[3].Sentence)
	}
}

func TestBaselineAppliesToEveryTier(t *testing.T) {
	r := DefaultRegistry()
	for _, tier := range r.Tiers() {
		band, err := r.BandFor(tier)
		if err != nil {
			t.Fatal(err)
		}
		if vs := Check("the substrate hums", band); len(vs) == 0 {
			t.Errorf("tier %s did not flag baseline token", tier)
		}
	}
}
