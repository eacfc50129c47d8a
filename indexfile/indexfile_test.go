package indexfile

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, codecName := range []string{"raw32", "vbyte", "simple8b"} {
		t.Run(codecName, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "main_index")

			w, err := Create(path, codecName)
			if err != nil {
				t.Fatalf("Create error: %v", err)
			}
			records := map[int][]int{
				3: {1, 5, 9},
				7: {2, 2345738},
				9: {0},
			}
			for _, termID := range []int{3, 7, 9} {
				if err := w.Append(termID, records[termID]); err != nil {
					t.Fatalf("Append(%d) error: %v", termID, err)
				}
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close error: %v", err)
			}

			r, err := Open(path, codecName)
			if err != nil {
				t.Fatalf("Open error: %v", err)
			}
			defer r.Close()

			// Sequential iteration yields ascending term_id order.
			var gotOrder []int
			for {
				termID, postings, ok, err := r.Next()
				if err != nil {
					t.Fatalf("Next error: %v", err)
				}
				if !ok {
					break
				}
				gotOrder = append(gotOrder, termID)
				if !reflect.DeepEqual(postings, records[termID]) {
					t.Errorf("Next() term %d postings = %v, want %v", termID, postings, records[termID])
				}
			}
			if !reflect.DeepEqual(gotOrder, []int{3, 7, 9}) {
				t.Errorf("iteration order = %v, want [3 7 9]", gotOrder)
			}

			// Random lookup.
			got, err := r.GetPostings(7)
			if err != nil {
				t.Fatalf("GetPostings(7) error: %v", err)
			}
			if !reflect.DeepEqual(got, records[7]) {
				t.Errorf("GetPostings(7) = %v, want %v", got, records[7])
			}
		})
	}
}

func TestGetPostings_AbsentTerm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_index")
	w, err := Create(path, "raw32")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := w.Append(1, []int{1}); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	r, err := Open(path, "raw32")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer r.Close()

	got, err := r.GetPostings(999)
	if err != nil {
		t.Fatalf("GetPostings error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetPostings(absent) = %v, want empty", got)
	}
}

// Property 6: appending a non-ascending term_id is rejected.
func TestAppend_RejectsNonAscendingTermID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_index")
	w, err := Create(path, "raw32")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	defer w.Close()

	if err := w.Append(5, []int{1}); err != nil {
		t.Fatalf("Append(5) error: %v", err)
	}
	if err := w.Append(5, []int{2}); err == nil {
		t.Error("Append with repeated term_id should fail")
	}
	if err := w.Append(4, []int{2}); err == nil {
		t.Error("Append with decreasing term_id should fail")
	}
}

func TestAppend_RejectsNonAscendingPostings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_index")
	w, err := Create(path, "raw32")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	defer w.Close()

	if err := w.Append(1, []int{3, 2}); err == nil {
		t.Error("Append with non-ascending postings should fail")
	}
}
