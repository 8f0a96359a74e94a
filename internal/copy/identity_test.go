package copy

import "testing"

func TestSameFile_ZeroDevInoNeverMatches(t *testing.T) {
	a := Stat{Dev: 0, Ino: 0}
	b := Stat{Dev: 0, Ino: 0}
	if sameFile(a, b) {
		t.Fatal("zero dev/ino must never be treated as identical")
	}
}

func TestSameFile_MatchingNonzeroIdentity(t *testing.T) {
	a := Stat{Dev: 5, Ino: 42}
	b := Stat{Dev: 5, Ino: 42}
	if !sameFile(a, b) {
		t.Fatal("expected matching nonzero dev/ino to be identical")
	}
}

func TestSameFile_DifferingIdentity(t *testing.T) {
	a := Stat{Dev: 5, Ino: 42}
	b := Stat{Dev: 5, Ino: 43}
	if sameFile(a, b) {
		t.Fatal("expected differing inode numbers to not match")
	}
}

func TestIsSrcSubdir(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		dest     string
		expected bool
	}{
		{"dest nested under src", "/a/b", "/a/b/c", true},
		{"unrelated paths", "/a/b", "/a/c", false},
		{"dest is src's parent", "/a/b/c", "/a/b", false},
		{"identical paths", "/a/b", "/a/b", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isSrcSubdir(tc.src, tc.dest); got != tc.expected {
				t.Fatalf("isSrcSubdir(%q, %q) = %v, want %v", tc.src, tc.dest, got, tc.expected)
			}
		})
	}
}
