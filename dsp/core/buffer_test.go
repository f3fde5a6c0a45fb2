package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenGrows(t *testing.T) {
	type pair struct{ l, r float64 }

	out := EnsureLen([]pair(nil), 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if got := EnsureLen(out, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want [][2]int
	}{
		{name: "even", n: 96, size: 48, want: [][2]int{{0, 48}, {48, 96}}},
		{name: "ragged", n: 50, size: 48, want: [][2]int{{0, 48}, {48, 50}}},
		{name: "whole", n: 10, size: 0, want: [][2]int{{0, 10}}},
		{name: "empty", n: 0, size: 48, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			Blocks(tt.n, tt.size, func(start, end int) {
				got = append(got, [2]int{start, end})
			})
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("range %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
