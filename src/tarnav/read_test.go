package tarnav

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadFileWhole(t *testing.T) {
	r := source(t, file("f", "0123456789"))
	buf := make([]byte, 10)
	n, remaining, err := ReadFile(r, "f", 0, buf)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if n != 10 || remaining != 0 {
		t.Errorf("ReadFile: n=%d remaining=%d, want 10, 0", n, remaining)
	}
	if string(buf) != "0123456789" {
		t.Errorf("ReadFile: %q", buf)
	}
}

func TestReadFileMidOffset(t *testing.T) {
	r := source(t, file("f", "0123456789"))
	buf := make([]byte, 2)
	n, remaining, err := ReadFile(r, "f", 5, buf)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if n != 2 || remaining != 3 {
		t.Errorf("ReadFile: n=%d remaining=%d, want 2, 3", n, remaining)
	}
	if string(buf) != "56" {
		t.Errorf("ReadFile: %q", buf)
	}
}

func TestReadFileOffsetAtEnd(t *testing.T) {
	r := source(t, file("f", "0123456789"))
	n, remaining, err := ReadFile(r, "f", 10, make([]byte, 4))
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if n != 0 || remaining != 0 {
		t.Errorf("ReadFile: n=%d remaining=%d, want 0, 0", n, remaining)
	}
}

func TestReadFileOffsetBeyondEnd(t *testing.T) {
	r := source(t, file("f", "0123456789"))
	if _, _, err := ReadFile(r, "f", 11, make([]byte, 4)); !errors.Is(err, ErrOffsetRange) {
		t.Fatalf("ReadFile: %v, want ErrOffsetRange", err)
	}
	if _, _, err := ReadFile(r, "f", -1, make([]byte, 4)); !errors.Is(err, ErrOffsetRange) {
		t.Fatalf("ReadFile: %v, want ErrOffsetRange", err)
	}
}

func TestReadFileStreaming(t *testing.T) {
	content := "The quick brown fox jumps over the lazy dog"
	r := source(t, dir("d/"), file("d/f", content))
	var got bytes.Buffer
	buf := make([]byte, 7)
	var offset int64
	for {
		n, remaining, err := ReadFile(r, "d/f", offset, buf)
		if err != nil {
			t.Fatalf("ReadFile at %d: %s", offset, err)
		}
		got.Write(buf[:n])
		offset += int64(n)
		if remaining == 0 {
			break
		}
	}
	if got.String() != content {
		t.Errorf("streamed: %q", got.String())
	}
}

func TestReadFileThroughSymlink(t *testing.T) {
	r := source(t,
		file("target", "payload"),
		symlink("ln", "target"),
	)
	buf := make([]byte, 7)
	n, remaining, err := ReadFile(r, "ln", 0, buf)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if n != 7 || remaining != 0 || string(buf) != "payload" {
		t.Errorf("ReadFile: n=%d remaining=%d buf=%q", n, remaining, buf)
	}
}

func TestReadFileNotAFile(t *testing.T) {
	r := source(t, dir("d/"), symlink("ln", "d/"))
	if _, _, err := ReadFile(r, "d/", 0, make([]byte, 4)); !errors.Is(err, ErrNotFile) {
		t.Fatalf("ReadFile: %v, want ErrNotFile", err)
	}
	if _, _, err := ReadFile(r, "ln", 0, make([]byte, 4)); !errors.Is(err, ErrNotFile) {
		t.Fatalf("ReadFile: %v, want ErrNotFile", err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	r := source(t, file("empty", ""))
	n, remaining, err := ReadFile(r, "empty", 0, make([]byte, 4))
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if n != 0 || remaining != 0 {
		t.Errorf("ReadFile: n=%d remaining=%d", n, remaining)
	}
}

// Operations reposition the source themselves, so any interleaving on a
// shared handle behaves like isolated calls.
func TestOperationsShareHandle(t *testing.T) {
	r := source(t,
		dir("dir/"),
		file("dir/a", "aaa"),
		file("dir/b", "bb"),
		symlink("dir/l", "dir/a"),
	)
	count, err := Check(r)
	if err != nil || count != 4 {
		t.Fatalf("Check: %d, %v", count, err)
	}
	if _, err := Find(r, "dir/b"); err != nil {
		t.Fatalf("Find: %s", err)
	}
	buf := make([]byte, 3)
	if _, _, err := ReadFile(r, "dir/l", 0, buf); err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	children, err := List(r, "dir/", 0)
	if err != nil {
		t.Fatalf("List: %s", err)
	}
	if len(children) != 3 {
		t.Errorf("List: %v", children)
	}
	// Same results again, in a different order.
	if string(buf) != "aaa" {
		t.Errorf("ReadFile: %q", buf)
	}
	count, err = Check(r)
	if err != nil || count != 4 {
		t.Fatalf("Check after reads: %d, %v", count, err)
	}
}
