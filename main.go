// Command mightemacs runs scripts and edits buffers against the engine
// implemented by the rest of this module. It has no terminal driver of its
// own: every switch of §6 either configures the editor before running
// startup/exec lines, or reads a file into a buffer, then the process
// exits. An interactive front end would sit on top of Editor the same way
// this command does.
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"mightemacs/internal/logio"
)

const version = "1.0.0"

const copyrightText = `mightemacs, a modal text-editing engine.
Copyright is held by its respective contributors; see the module's
license for terms.`

const usageText = `usage: mightemacs [switches] [file [+N | -N]] ...

  -copyright, -version, -usage, -help   print and exit
  -no-startup                           skip startup scripts
  -no-read                              do not read the first file
  -dir <path>                           change directory at startup
  -exec <line>                          execute a script line at startup (repeatable)
  -global-mode <list>                   comma-separated modes, ^name clears (repeatable)
  -buf-mode <list>                      as -global-mode, for the preceding file (repeatable)
  -inp-delim <s>, -otp-delim <s>        set the startup buffer's line delimiter (-otp-delim
                                        only when -inp-delim is absent); files read are
                                        still auto-detected
  -path <dir>                           prepend a directory to the script search path
  -r, -rw                               mark the preceding file read-only / read-write
  -search <pattern>                     perform an initial search in the first file
  -shell                                treat the remaining arguments as a script and its args
`

// stringList accumulates repeatable flag.Var occurrences in order.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	log := &logio.Logger{}
	log.SetOutput(os.Stderr)
	code := run(os.Args[1:], log)
	log.Close()
	os.Exit(code)
}

var lineGotoPattern = regexp.MustCompile(`^[+-][0-9]+$`)

func run(args []string, log *logio.Logger) int {
	if len(args) > 0 && args[0] == "-shell" {
		return runShell(args[1:], log)
	}

	args, gotoLineArg, haveGoto := extractLineGoto(args)

	ed := NewEditor(WithWorkDir(mustGetwd()))

	var (
		showCopyright, showVersion, showUsage, showHelp bool
		noStartup, noRead                               bool
		dirFlag                                         string
		execLines                                       stringList
		globalModes                                     stringList
		pathDirs                                        stringList
		inpDelim, otpDelim                              string
		searchPat                                       string
	)

	// files holds each positional filename paired with the -buf-mode and
	// -r/-rw switches that trailed it (spec.md §6: "applied to the
	// immediately preceding file"). Stdlib flag.Parse stops at the first
	// positional argument, so files are consumed one at a time, re-parsing
	// the remainder against the same FlagSet after each — a fresh FlagSet
	// per round would reset the scalar switches (-dir, -search, ...) back
	// to their zero values on every round.
	type fileSpec struct {
		path      string
		modes     stringList
		readOnly  bool
		readWrite bool
	}
	var files []fileSpec

	var bufModes stringList
	var readOnly, readWrite bool

	fs := flag.NewFlagSet("mightemacs", flag.ContinueOnError)
	fs.BoolVar(&showCopyright, "copyright", false, "print copyright and exit")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.BoolVar(&showUsage, "usage", false, "print usage and exit")
	fs.BoolVar(&showHelp, "help", false, "print help and exit")
	fs.BoolVar(&noStartup, "no-startup", false, "skip site and user startup files")
	fs.BoolVar(&noRead, "no-read", false, "do not auto-read the first file")
	fs.StringVar(&dirFlag, "dir", "", "change directory at startup")
	fs.Var(&execLines, "exec", "execute a script line at startup")
	fs.Var(&globalModes, "global-mode", "comma-separated global modes")
	fs.Var(&pathDirs, "path", "prepend a directory to the script search path")
	fs.StringVar(&inpDelim, "inp-delim", "", "line delimiter of the startup buffer")
	fs.StringVar(&otpDelim, "otp-delim", "", "line delimiter of the startup buffer when -inp-delim is absent")
	fs.StringVar(&searchPat, "search", "", "initial search pattern")
	fs.Var(&bufModes, "buf-mode", "comma-separated buffer modes for the preceding file")
	fs.BoolVar(&readOnly, "r", false, "mark the preceding file read-only")
	fs.BoolVar(&readWrite, "rw", false, "mark the preceding file read-write")

	remaining := args
	for {
		bufModes, readOnly, readWrite = nil, false, false
		if err := fs.Parse(remaining); err != nil {
			log.Printf("ERROR", "%v", err)
			return 1
		}
		if len(files) > 0 {
			last := &files[len(files)-1]
			last.modes = append(last.modes, bufModes...)
			last.readOnly = last.readOnly || readOnly
			last.readWrite = last.readWrite || readWrite
		}

		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		files = append(files, fileSpec{path: rest[0]})
		remaining = rest[1:]
	}

	switch {
	case showHelp:
		fmt.Print(usageText)
		return 0
	case showCopyright:
		fmt.Println(copyrightText)
		return 0
	case showVersion:
		fmt.Println(version)
		return 0
	case showUsage:
		fmt.Print(usageText)
		return 0
	}

	if searchPat != "" && (noRead || haveGoto) {
		log.Printf("ERROR", "-search conflicts with -no-read and +N/-N")
		return 1
	}

	if dirFlag != "" {
		if err := ed.ChDir(dirFlag); err != nil {
			log.Printf("ERROR", "%v", err)
			return 1
		}
	}

	if inpDelim != "" || otpDelim != "" {
		if inpDelim == "" {
			inpDelim = otpDelim
		}
		ed.Env.Buf.delim = inpDelim
	}

	scriptPath := append(stringList{}, pathDirs...)
	ed.ScriptPath = append(scriptPath, ed.ScriptPath...)

	if !noStartup {
		if st := runStartupFiles(ed, ed.ScriptPath); st.Severity >= SevFailure {
			log.Printf("ERROR", "%s", st.Error())
			return 1
		}
	}

	for _, name := range globalModes {
		if err := applyModeToken(ed.Modes, ed.GlobalModes, name); err != nil {
			log.Printf("ERROR", "%v", err)
			return 1
		}
	}

	for _, line := range execLines {
		if st := runScriptLine(ed, line); st.Severity >= SevFailure {
			log.Printf("ERROR", "%s", st.Error())
			if st.Severity >= SevFatalError {
				return 1
			}
		}
	}

	var firstBuf *Buffer
	if !noRead {
		for i, f := range files {
			buf, err := ed.CreateBuffer(DeriveBufferName(f.path), FindForceUnique)
			if err != nil {
				log.Printf("ERROR", "%v", err)
				return 1
			}
			if _, err := ReadFile(ed, buf, f.path, false); err != nil {
				log.Printf("ERROR", "%v", err)
				return 1
			}
			buf.set(BufActive)
			for _, name := range f.modes {
				if err := applyModeToken(ed.Modes, buf.modes, name); err != nil {
					log.Printf("ERROR", "%v", err)
					return 1
				}
			}
			if f.readOnly && !f.readWrite {
				buf.set(BufReadOnly)
			} else if f.readWrite {
				buf.clearFlag(BufReadOnly)
			}
			if i == 0 {
				firstBuf = buf
			}
		}
		if firstBuf != nil {
			if err := ed.SwitchBuffer(firstBuf, false); err != nil {
				log.Printf("ERROR", "%v", err)
				return 1
			}
		}
	}

	if firstBuf != nil && haveGoto {
		ed.Point = gotoLine(firstBuf, gotoLineArg)
	}
	if firstBuf != nil && searchPat != "" {
		if st := runInitialSearch(ed, firstBuf, searchPat); st.Severity >= SevFailure {
			log.Printf("ERROR", "%s", st.Error())
			return 1
		}
	}

	return 0
}

// runShell implements -shell: the remaining arguments are a script file
// followed by the arguments to pass it, per spec.md §6.
func runShell(args []string, log *logio.Logger) int {
	if len(args) == 0 {
		log.Printf("ERROR", "-shell requires a script filename")
		return 1
	}
	ed := NewEditor(WithWorkDir(mustGetwd()))
	scriptArgs := make([]Value, len(args)-1)
	for i, a := range args[1:] {
		scriptArgs[i] = StringValue(a)
	}
	_, st := runScriptFile(ed, args[0], scriptArgs)
	switch {
	case st.Severity >= SevHelpExit, st.Severity >= SevScriptExit:
		return 0
	case st.Severity >= SevFailure:
		log.Printf("ERROR", "%s", st.Error())
		return 1
	}
	return 0
}

// extractLineGoto pulls a single bare +N/-N token (spec.md §6: "go to line
// N, negative = from end") out of args, since it would otherwise be
// misread as an unknown flag by the stdlib flag parser.
func extractLineGoto(args []string) (rest []string, n int, have bool) {
	for i, a := range args {
		if lineGotoPattern.MatchString(a) {
			n, _ = strconv.Atoi(a)
			rest = append(append([]string{}, args[:i]...), args[i+1:]...)
			return rest, n, true
		}
	}
	return args, 0, false
}

// gotoLine resolves a 1-based (or, if negative, counted from the end) line
// number to a Point in buf, clamping to the buffer's bounds.
func gotoLine(buf *Buffer, n int) Point {
	if n >= 0 {
		l := buf.firstLine()
		for i := 1; i < n && l.next != nil; i++ {
			l = l.next
		}
		return Point{Line: l}
	}
	lines := collectLines(buf)
	idx := len(lines) + n
	if idx < 0 {
		idx = 0
	} else if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return Point{Line: lines[idx]}
}

func collectLines(buf *Buffer) []*Line {
	var lines []*Line
	for l := buf.firstLine(); ; l = l.next {
		lines = append(lines, l)
		if l == buf.lastLine() {
			break
		}
	}
	return lines
}

// applyModeToken splits list on commas and enables each name in set, or
// disables it when ^-prefixed, per spec.md §6's -global-mode/-buf-mode
// syntax. Empty names are skipped.
func applyModeToken(table *ModeTable, set *ModeSet, list string) error {
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "^") {
			table.Disable(set, name[1:])
			continue
		}
		if _, err := table.Enable(set, name); err != nil {
			return err
		}
	}
	return nil
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// runStartupFiles runs the user's startup script, if one exists, found by
// searching dirs then $HOME for ".mightemacsrc". Its absence is not an
// error.
func runStartupFiles(ed *Editor, dirs []string) Status {
	candidates := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		candidates = append(candidates, d+"/.mightemacsrc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, home+"/.mightemacsrc")
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, st := runScriptFile(ed, path, nil); st.Severity >= SevFailure {
			return st
		}
		return OK
	}
	return OK
}

// runScriptLine runs a single script statement as an anonymous,
// one-shot macro, for -exec.
func runScriptLine(ed *Editor, line string) Status {
	b, err := ed.Reg.Create(string(MacroSigil)+"exec", FindForceUnique, nil)
	if err != nil {
		return WrapError(err)
	}
	defer ed.Reg.Delete(b, true)
	b.AppendLine([]byte(line))
	_, st := ed.Exec.Run(b, CallArgs{})
	return st
}

// runScriptFile loads path's content into an anonymous macro buffer and
// runs it with scriptArgs bound as its positional arguments.
func runScriptFile(ed *Editor, path string, scriptArgs []Value) (Value, Status) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Nil, WrapError(err)
	}
	delim := DetectDelimiter(data)
	lines, serr := splitLines(data, delim)
	if serr != nil {
		return Nil, ScriptErrorf("%s: %v", path, serr)
	}
	b, cerr := ed.Reg.Create(string(MacroSigil)+"script", FindForceUnique, nil)
	if cerr != nil {
		return Nil, WrapError(cerr)
	}
	defer ed.Reg.Delete(b, true)
	for _, ln := range lines {
		b.AppendLine(ln)
	}
	return ed.Exec.Run(b, CallArgs{Args: scriptArgs})
}

// runInitialSearch performs a forward search for pat over the whole of buf,
// leaving the match compiled into ed.Env.SearchMatch and moving ed.Point to
// its start on success.
func runInitialSearch(ed *Editor, buf *Buffer, pat string) Status {
	m := ed.Env.SearchMatch
	if err := m.Compile(pat, 0); err != nil {
		return ScriptErrorf("invalid search pattern %q: %v", pat, err)
	}
	text, lineStarts, lines := linearize(buf)
	start, _, ok := m.Scan(text, 0, 1)
	if !ok {
		return NewStatus(SevNotFound, 0, "not found: %q", pat)
	}
	ed.Point = offsetToPoint(lineStarts, lines, start)
	return OK
}
