package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"mightemacs/internal/flushio"
)

// Line delimiter conventions recognized on read, per spec.md §4.L.
const (
	DelimLF   = "\n"
	DelimCR   = "\r"
	DelimCRLF = "\r\n"
)

// DetectDelimiter scans data for the first line terminator: a bare LF, a
// CRLF pair, or a bare CR. An empty or single-line file with none of
// these defaults to LF.
func DetectDelimiter(data []byte) string {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return DelimLF
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return DelimCRLF
			}
			return DelimCR
		}
	}
	return DelimLF
}

// splitLines splits data on delim, dropping exactly one trailing empty
// segment (the terminator after the last line), and rejects a line
// containing a different convention's bare terminator character, per
// §4.L's "subsequent lines ... must use the same delimiter."
func splitLines(data []byte, delim string) ([][]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	d := []byte(delim)
	var lines [][]byte
	for {
		i := bytes.Index(data, d)
		if i < 0 {
			if err := checkNoStrayDelim(data, delim); err != nil {
				return nil, err
			}
			lines = append(lines, data)
			break
		}
		line := data[:i]
		if err := checkNoStrayDelim(line, delim); err != nil {
			return nil, err
		}
		lines = append(lines, line)
		data = data[i+len(d):]
	}
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines, nil
}

func checkNoStrayDelim(line []byte, delim string) error {
	var stray byte
	switch delim {
	case DelimLF:
		stray = '\r'
	case DelimCR:
		stray = '\n'
	default:
		if bytes.IndexByte(line, '\r') >= 0 || bytes.IndexByte(line, '\n') >= 0 {
			return ScriptErrorf("inconsistent line delimiter: bare CR or LF found in a CRLF-delimited file")
		}
		return nil
	}
	if bytes.IndexByte(line, stray) >= 0 {
		return ScriptErrorf("inconsistent line delimiter: file mixes delimiter conventions")
	}
	return nil
}

// ReadFile loads path into buf, auto-detecting its line delimiter, per
// spec.md §4.L. If the file does not exist: when requireExist is set
// this is an error, otherwise buf is left as a fresh empty buffer and
// newFile reports true (the caller can surface a "new file" notice). On
// success the buffer is cleared and refilled, its filename and detected
// delimiter updated, and (if ed is non-nil) the `read` hook runs.
func ReadFile(ed *Editor, buf *Buffer, path string, requireExist bool) (newFile bool, err error) {
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		if os.IsNotExist(rerr) {
			if requireExist {
				return false, ScriptErrorf("file %q does not exist", path)
			}
			buf.Clear()
			buf.filename = path
			buf.delim = DelimLF
			return true, nil
		}
		return false, WrapError(rerr)
	}

	delim := DetectDelimiter(data)
	lines, serr := splitLines(data, delim)
	if serr != nil {
		return false, serr
	}
	buf.Clear()
	buf.filename = path
	buf.delim = delim
	for _, ln := range lines {
		buf.AppendLine(ln)
	}

	if ed != nil {
		if _, st := ed.Exec.exechook("read", CallArgs{Args: []Value{StringValue(path)}}); st.Severity >= SevFailure {
			return false, st
		}
	}
	return false, nil
}

// WriteOptions controls the save strategy of spec.md §4.L.
type WriteOptions struct {
	Safe  bool // write to a temp file, then rename into place
	Bak   bool // as Safe, but preserve the original as path+".bak"
	ATerm bool // ensure the file ends in a delimiter
}

// WriteFile renders buf's lines using its detected (or buf.delim, if one
// was assigned) delimiter and writes path, through a safe-save sequence
// when opts.Safe or opts.Bak is set and path already exists. Runs the
// `write` hook (if ed is non-nil) after a successful write.
func WriteFile(ed *Editor, buf *Buffer, path string, opts WriteOptions) error {
	delim := buf.delim
	if delim == "" {
		delim = DelimLF
	}
	lines := lineTexts(buf)
	if opts.ATerm && len(lines) > 0 && lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	content := []byte(strings.Join(lines, delim))

	if opts.Safe || opts.Bak {
		if _, err := os.Stat(path); err == nil {
			if err := safeSave(path, content, opts.Bak); err != nil {
				return err
			}
			return runWriteHook(ed, path)
		}
	}
	if err := writeFileFlushed(path, content, 0644); err != nil {
		return WrapError(err)
	}
	return runWriteHook(ed, path)
}

// writeFileFlushed writes content to path through a flushio.WriteFlusher,
// per spec.md §4.L's save path: the file is opened directly rather than
// via os.WriteFile so the write goes through the same flush discipline as
// safeSave's temp-file write below.
func writeFileFlushed(path string, content []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	wf := flushio.NewWriteFlusher(f)
	if _, err := wf.Write(content); err != nil {
		f.Close()
		return err
	}
	if err := wf.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runWriteHook(ed *Editor, path string) error {
	if ed == nil {
		return nil
	}
	if _, st := ed.Exec.exechook("write", CallArgs{Args: []Value{StringValue(path)}}); st.Severity >= SevFailure {
		return st
	}
	return nil
}

// safeSave implements §4.L's "Safe save": write content to a sibling temp
// file, dispose of (or back up) the original, then rename the temp file
// into place, restoring the original's permission bits. Every failing
// step reports exactly where the surviving content currently lives, so a
// partial failure never silently loses data.
func safeSave(path string, content []byte, bak bool) error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode()
	}

	dir := filepath.Dir(path)
	prefix := filepath.Base(path)[:1]
	tmp, err := os.CreateTemp(dir, prefix+"*")
	if err != nil {
		return ScriptErrorf("save failed: could not create temp file in %q: %v", dir, err)
	}
	tmpPath := tmp.Name()

	wf := flushio.NewWriteFlusher(tmp)
	if _, err := wf.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ScriptErrorf("save failed: original %q left untouched, could not write temp file: %v", path, err)
	}
	if err := wf.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ScriptErrorf("save failed: original %q left untouched, could not flush temp file: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ScriptErrorf("save failed: original %q left untouched, could not close temp file: %v", path, err)
	}

	if bak {
		bakPath := path + ".bak"
		if _, err := os.Stat(bakPath); err != nil {
			if err := os.Rename(path, bakPath); err != nil {
				return ScriptErrorf("save failed: surviving new content at %q, could not back up original %q to %q: %v", tmpPath, path, bakPath, err)
			}
		}
	} else if err := os.Remove(path); err != nil {
		return ScriptErrorf("save failed: surviving new content at %q, could not remove original %q: %v", tmpPath, path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return ScriptErrorf("save failed: surviving new content at %q, could not rename into place at %q: %v", tmpPath, path, err)
	}
	_ = os.Chmod(path, mode)
	return nil
}
