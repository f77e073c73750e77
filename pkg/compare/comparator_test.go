package compare

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// zipEntry describes one member to store in a test archive
type zipEntry struct {
	name    string
	content string
}

// TestHelper provides utilities for comparator tests
type TestHelper struct {
	t       *testing.T
	tempDir string
}

// NewTestHelper creates a new test helper with a temporary directory
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "packcheck-compare-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return &TestHelper{t: t, tempDir: tempDir}
}

// Cleanup removes all temporary files
func (h *TestHelper) Cleanup() {
	os.RemoveAll(h.tempDir)
}

// CreateZip writes a ZIP archive with the given members, in order.
// Members with a trailing "/" become explicit directory entries.
func (h *TestHelper) CreateZip(name string, entries []zipEntry) string {
	h.t.Helper()

	path := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		h.t.Fatalf("failed to create zip file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			h.t.Fatalf("failed to create zip entry %s: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			h.t.Fatalf("failed to write zip entry %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		h.t.Fatalf("failed to close zip writer: %v", err)
	}

	return path
}

// CreateDir creates a directory tree under the temp dir
func (h *TestHelper) CreateDir(name string) string {
	h.t.Helper()
	path := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		h.t.Fatalf("failed to create dir: %v", err)
	}
	return path
}

// CreateFile creates a file with the given content under the temp dir
func (h *TestHelper) CreateFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
	return path
}

func TestCompare_IdenticalAfterRoundTrip(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("photos.zip", []zipEntry{
		{"photos/", ""},
		{"photos/a.jpg", "aaaaa"},
		{"photos/sub/", ""},
		{"photos/sub/b.jpg", "bb"},
	})
	dir := h.CreateDir("photos")
	h.CreateFile("photos/a.jpg", "aaaaa")
	h.CreateFile("photos/sub/b.jpg", "bb")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	if !result.Identical {
		t.Errorf("expected identical, got differences: %v", result.Differences)
	}
	if len(result.Differences) != 0 {
		t.Errorf("expected no differences, got %v", result.Differences)
	}
}

func TestCompare_MissingInDirectory(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("data.zip", []zipEntry{
		{"file1.txt", "12345"},
	})
	dir := h.CreateDir("data")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	want := []string{"Missing in directory: file1.txt"}
	if !reflect.DeepEqual(result.Differences, want) {
		t.Errorf("Differences = %v, want %v", result.Differences, want)
	}
	if result.Identical {
		t.Error("expected not identical")
	}
}

func TestCompare_ExtraInDirectory(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("data.zip", []zipEntry{
		{"file1.txt", "12345"},
	})
	dir := h.CreateDir("data")
	h.CreateFile("data/file1.txt", "12345")
	h.CreateFile("data/extra.txt", "x")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	want := []string{"Extra in directory: extra.txt"}
	if !reflect.DeepEqual(result.Differences, want) {
		t.Errorf("Differences = %v, want %v", result.Differences, want)
	}
}

func TestCompare_SizeMismatch(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("data.zip", []zipEntry{
		{"file1.txt", "12345"},
	})
	dir := h.CreateDir("data")
	h.CreateFile("data/file1.txt", "1234567")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	want := []string{"Size mismatch for file1.txt: archive=5, directory=7"}
	if !reflect.DeepEqual(result.Differences, want) {
		t.Errorf("Differences = %v, want %v", result.Differences, want)
	}
}

func TestCompare_UnicodeEquivalence(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	// Archive members spell \u00e1 as base letter plus combining mark; the
	// directory on disk uses the precomposed codepoint. NFC makes them equal.
	archive := h.CreateZip("Im\u00e1genes.zip", []zipEntry{
		{"Ima\u0301genes/", ""},
		{"Ima\u0301genes/test1.txt", "content1"},
		{"Ima\u0301genes/test2.txt", "content2"},
	})
	dir := h.CreateDir("Im\u00e1genes")
	h.CreateFile("Im\u00e1genes/test1.txt", "content1")
	h.CreateFile("Im\u00e1genes/test2.txt", "content2")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	if !result.Identical {
		t.Errorf("expected identical despite unicode spelling variants, got differences: %v", result.Differences)
	}
}

func TestCompare_HiddenFilePolicy(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("data.zip", []zipEntry{
		{"one.txt", "1"},
		{"two.txt", "22"},
	})
	dir := h.CreateDir("data")
	h.CreateFile("data/one.txt", "1")
	h.CreateFile("data/two.txt", "22")
	h.CreateFile("data/.hidden", "secret")

	t.Run("excluded", func(t *testing.T) {
		c := NewComparator(false, nil)
		result := c.Compare(context.Background(), archive, dir)
		if !result.Identical {
			t.Errorf("expected identical with hidden files excluded, got %v", result.Differences)
		}
	})

	t.Run("included", func(t *testing.T) {
		c := NewComparator(true, nil)
		result := c.Compare(context.Background(), archive, dir)
		want := []string{"Extra in directory: .hidden"}
		if !reflect.DeepEqual(result.Differences, want) {
			t.Errorf("Differences = %v, want %v", result.Differences, want)
		}
	})
}

func TestCompare_Deterministic(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("data.zip", []zipEntry{
		{"b.txt", "bb"},
		{"a.txt", "aa"},
		{"c.txt", "cc"},
	})
	dir := h.CreateDir("data")
	h.CreateFile("data/x.txt", "x")
	h.CreateFile("data/y.txt", "y")
	h.CreateFile("data/a.txt", "aaaa")

	c := NewComparator(false, nil)
	first := c.Compare(context.Background(), archive, dir)
	second := c.Compare(context.Background(), archive, dir)

	if !reflect.DeepEqual(first.Differences, second.Differences) {
		t.Errorf("repeated comparisons differ:\n%v\n%v", first.Differences, second.Differences)
	}

	// Within each category, entries are sorted lexicographically
	want := []string{
		"Missing in directory: b.txt",
		"Missing in directory: c.txt",
		"Extra in directory: x.txt",
		"Extra in directory: y.txt",
		"Size mismatch for a.txt: archive=2, directory=4",
	}
	if !reflect.DeepEqual(first.Differences, want) {
		t.Errorf("Differences = %v, want %v", first.Differences, want)
	}
}

func TestCompare_UnsupportedFormat(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateFile("backup.tar.gz", "not really a tarball")
	dir := h.CreateDir("backup.tar")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	if result.Identical {
		t.Error("expected not identical for unsupported format")
	}
	if len(result.Differences) != 1 || !strings.Contains(result.Differences[0], "Unsupported archive format") {
		t.Errorf("Differences = %v, want a single unsupported-format diagnostic", result.Differences)
	}
}

func TestCompare_CorruptArchiveTreatedAsEmpty(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateFile("broken.zip", "this is not a zip file")
	dir := h.CreateDir("broken")
	h.CreateFile("broken/file.txt", "content")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	if result.Identical {
		t.Error("expected not identical for corrupt archive")
	}
	want := []string{"Extra in directory: file.txt"}
	if !reflect.DeepEqual(result.Differences, want) {
		t.Errorf("Differences = %v, want %v", result.Differences, want)
	}
}

func TestCompare_ZipWithoutDirectoryEntries(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	// No explicit directory members; files still live in subdirectories
	archive := h.CreateZip("docs.zip", []zipEntry{
		{"docs/readme.md", "hello"},
		{"docs/sub/notes.md", "notes"},
	})
	dir := h.CreateDir("docs")
	h.CreateFile("docs/readme.md", "hello")
	h.CreateFile("docs/sub/notes.md", "notes")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	if !result.Identical {
		t.Errorf("expected identical when archive omits directory entries, got %v", result.Differences)
	}
}

func TestCompare_EmptySubdirectoryDetected(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("proj.zip", []zipEntry{
		{"proj/", ""},
		{"proj/main.txt", "m"},
		{"proj/sub/", ""},
		{"proj/sub/x.txt", "x"},
	})
	dir := h.CreateDir("proj")
	h.CreateFile("proj/main.txt", "m")
	h.CreateFile("proj/sub/x.txt", "x")
	h.CreateDir("proj/empty")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	want := []string{"Extra in directory: empty/"}
	if !reflect.DeepEqual(result.Differences, want) {
		t.Errorf("Differences = %v, want %v", result.Differences, want)
	}
}

// The stem heuristic strips the archive's own top-level prefix only. An
// archive named differently from its embedded folder keeps the prefix and
// reports differences even for duplicate content; pinned intentionally.
func TestPrefixNotStrippedWhenStemDiffers(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("backup.zip", []zipEntry{
		{"photos/a.jpg", "aaa"},
	})
	dir := h.CreateDir("backup")
	h.CreateFile("backup/a.jpg", "aaa")

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, dir)

	if result.Identical {
		t.Error("expected stem mismatch to leave prefix unstripped")
	}
	want := []string{
		"Missing in directory: photos/a.jpg",
		"Extra in directory: a.jpg",
	}
	if !reflect.DeepEqual(result.Differences, want) {
		t.Errorf("Differences = %v, want %v", result.Differences, want)
	}
}

func TestCompare_MissingDirectory(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	archive := h.CreateZip("data.zip", []zipEntry{
		{"file1.txt", "12345"},
	})

	c := NewComparator(false, nil)
	result := c.Compare(context.Background(), archive, filepath.Join(h.tempDir, "nope"))

	if result.Identical {
		t.Error("expected not identical for missing directory")
	}
	if len(result.Differences) != 1 || !strings.HasPrefix(result.Differences[0], "Comparison failed:") {
		t.Errorf("Differences = %v, want a single comparison-failed diagnostic", result.Differences)
	}
}

func TestFindCandidates(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	// Pair at the root
	h.CreateZip("photos.zip", []zipEntry{{"a.txt", "a"}})
	h.CreateDir("photos")
	// Pair nested one level down
	h.CreateZip("nested/music.zip", []zipEntry{{"b.txt", "b"}})
	h.CreateDir("nested/music")
	// Archive without a sibling directory
	h.CreateZip("lonely.zip", []zipEntry{{"c.txt", "c"}})
	// Non-archive file with a matching directory
	h.CreateFile("notes.txt", "notes")
	h.CreateDir("notes")

	c := NewComparator(false, nil)
	pairs := c.FindCandidates(context.Background(), h.tempDir)

	if len(pairs) != 2 {
		t.Fatalf("expected 2 candidate pairs, got %d: %+v", len(pairs), pairs)
	}

	found := make(map[string]string)
	for _, p := range pairs {
		rel, _ := filepath.Rel(h.tempDir, p.ArchivePath)
		relDir, _ := filepath.Rel(h.tempDir, p.DirectoryPath)
		found[filepath.ToSlash(rel)] = filepath.ToSlash(relDir)
	}
	if found["photos.zip"] != "photos" {
		t.Errorf("missing root pair, got %v", found)
	}
	if found["nested/music.zip"] != "nested/music" {
		t.Errorf("missing nested pair, got %v", found)
	}
}

// A file literally named ".zip" is all stem and no extension; it must not
// pair with its own parent directory, which a deletion policy could then
// remove wholesale.
func TestFindCandidates_DotNamedArchive(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateZip(".zip", []zipEntry{{"a.txt", "a"}})
	h.CreateFile("unrelated.txt", "x")

	c := NewComparator(false, nil)
	pairs := c.FindCandidates(context.Background(), h.tempDir)

	if len(pairs) != 0 {
		t.Fatalf("expected no candidate pairs for dot-named archive, got %+v", pairs)
	}
}

func TestFindCandidates_CaseInsensitiveExtension(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateZip("DATA.ZIP", []zipEntry{{"a.txt", "a"}})
	h.CreateDir("DATA")

	c := NewComparator(false, nil)
	pairs := c.FindCandidates(context.Background(), h.tempDir)

	if len(pairs) != 1 {
		t.Fatalf("expected 1 candidate pair for uppercase extension, got %d", len(pairs))
	}
}
