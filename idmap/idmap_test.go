package idmap

import "testing"

func TestIntern_AssignsDenseIDs(t *testing.T) {
	m := New()

	words := []string{"quick", "brown", "fox", "quick", "brown"}
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = m.Intern(w)
	}

	if ids[0] != ids[3] || ids[1] != ids[4] {
		t.Fatalf("repeated interns got different ids: %v", ids)
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
}

// Property 5: IdMap bijection.
func TestIntern_Bijection(t *testing.T) {
	m := New()
	strs := []string{"alpha", "beta", "gamma", "delta", "alpha", "epsilon"}
	for _, s := range strs {
		m.Intern(s)
	}

	seen := make(map[int]bool)
	for _, s := range strs {
		id, ok := m.LookupID(s)
		if !ok {
			t.Fatalf("LookupID(%q) not found after Intern", s)
		}
		if got := m.LookupString(id); got != s {
			t.Errorf("LookupString(LookupID(%q)) = %q, want %q", s, got, s)
		}
		seen[id] = true
	}

	for id := 0; id < m.Len(); id++ {
		if !seen[id] {
			t.Errorf("id %d in [0, Len()) was never produced by an intern", id)
		}
	}
}

func TestLookupID_AbsentString(t *testing.T) {
	m := New()
	m.Intern("present")

	if _, ok := m.LookupID("absent"); ok {
		t.Error("LookupID(absent) reported ok=true")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	m := New()
	for _, s := range []string{"quick", "brown", "fox", "jumps"} {
		m.Intern(s)
	}

	data, err := m.Save()
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if loaded.Len() != m.Len() {
		t.Fatalf("loaded.Len() = %d, want %d", loaded.Len(), m.Len())
	}
	for id := 0; id < m.Len(); id++ {
		if loaded.LookupString(id) != m.LookupString(id) {
			t.Errorf("loaded.LookupString(%d) = %q, want %q", id, loaded.LookupString(id), m.LookupString(id))
		}
	}
	for _, s := range []string{"quick", "brown", "fox", "jumps"} {
		wantID, _ := m.LookupID(s)
		gotID, ok := loaded.LookupID(s)
		if !ok || gotID != wantID {
			t.Errorf("loaded.LookupID(%q) = (%d, %v), want (%d, true)", s, gotID, ok, wantID)
		}
	}
}
