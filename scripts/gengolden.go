// Command gengolden scans a source file for scriptCase builder methods
// (func (sc scriptCase) with*/expect*(...) scriptCase) and writes a free
// function for each, so table-driven tests can compose cases as
//
//	newScriptCase("answer").apply(withLine(`return 42`), expectValue(IntValue(42)))
//
// instead of chaining methods by hand. It plays the same role the
// teacher's own gen_vm_expects.go dev tool played for vmTestCase, scanning
// the analogous with*/expect* convention on this engine's script-test
// builder instead of a VM's. Output is piped through goimports and written
// concurrently across every input path given on the command line,
// coordinated with errgroup.WithContext exactly as the teacher's tool
// coordinates its own goimports pipe and generation goroutine.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

var methodPattern = regexp.MustCompile(`func \(sc scriptCase\) (with|expect)(\w+)\((.*?)\) scriptCase`)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: gengolden <source-file>...")
	}
	if err := run(os.Args[1:]); err != nil {
		log.Fatalln(err)
	}
}

func run(paths []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		p := p
		eg.Go(func() error { return regenerate(ctx, p) })
	}
	return eg.Wait()
}

func regenerate(ctx context.Context, inputPath string) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}
	outPath := outputPath(inputPath)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by scripts/gengolden.go from ")
	buf.WriteString(inputPath)
	buf.WriteString("; DO NOT EDIT.\n\n")
	buf.WriteString("package main\n\n")

	for _, line := range bytes.Split(src, []byte("\n")) {
		match := methodPattern.FindSubmatch(line)
		if match == nil {
			continue
		}
		kind, name, args := match[1], match[2], match[3]
		writeCombinator(&buf, kind, name, args)
	}

	goimports := exec.CommandContext(ctx, "goimports")
	goimports.Stdin = bytes.NewReader(buf.Bytes())
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()
	goimports.Stdout = out
	goimports.Stderr = os.Stderr
	if err := goimports.Run(); err != nil {
		return fmt.Errorf("goimports %s: %w", outPath, err)
	}
	return nil
}

func writeCombinator(buf io.Writer, kind, name, args []byte) {
	fnName := append(append([]byte{}, kind...), name...)
	fmt.Fprintf(buf, "func %s(%s) func(scriptCase) scriptCase {\n", fnName, args)
	fmt.Fprintf(buf, "\treturn func(sc scriptCase) scriptCase {\n")
	fmt.Fprintf(buf, "\t\treturn sc.%s%s(%s)\n", kind, name, firstParamNames(args))
	fmt.Fprintf(buf, "\t}\n}\n\n")
}

// firstParamNames extracts just the parameter names from a Go parameter
// list ("v Value" -> "v"), assuming one name per parameter as scriptCase's
// with*/expect* methods all declare.
func firstParamNames(args []byte) string {
	var names [][]byte
	for _, part := range bytes.Split(args, []byte(",")) {
		fields := bytes.Fields(bytes.TrimSpace(part))
		if len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return string(bytes.Join(names, []byte(", ")))
}

func outputPath(inputPath string) string {
	const suffix = "_test.go"
	if bytes.HasSuffix([]byte(inputPath), []byte(suffix)) {
		return inputPath[:len(inputPath)-len(suffix)] + "_gen_test.go"
	}
	return inputPath + "_gen.go"
}
