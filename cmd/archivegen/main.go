// Command archivegen emits a Go source file of named uint64 constants,
// one per registered type name, computed once at generation time so
// callers needing a true compile-time constant never pay typeid's
// runtime SHA-1 cost. A small flag set, one pass of work, and a plain
// log.Fatal on error, since this only ever runs at build time, never
// in a serving process.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/rawbytedev/archive/typeid"
)

func main() {
	pkgName := flag.String("package", "ids", "package name for the generated file")
	outPath := flag.String("out", "ids_gen.go", "output file path")
	namesPath := flag.String("names", "", "path to a file of newline-separated type names; required")
	flag.Parse()

	if *namesPath == "" {
		log.Fatal("archivegen: -names is required")
	}

	names, err := readNames(*namesPath)
	if err != nil {
		log.Fatalf("archivegen: %v", err)
	}
	if len(names) == 0 {
		log.Fatal("archivegen: no names found")
	}

	if err := generate(*outPath, *pkgName, names); err != nil {
		log.Fatalf("archivegen: %v", err)
	}
	fmt.Printf("archivegen: wrote %d ids to %s\n", len(names), *outPath)
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func generate(outPath, pkgName string, names []string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "// Code generated by archivegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(w, "package %s\n\n", pkgName)
	fmt.Fprintf(w, "const (\n")
	for _, name := range names {
		id := typeid.MakeID(name)
		fmt.Fprintf(w, "\t// %s is typeid.MakeID(%q).\n", constName(name), name)
		fmt.Fprintf(w, "\t%s uint64 = %#x\n", constName(name), id)
	}
	fmt.Fprintf(w, ")\n")
	return w.Flush()
}

// constName turns an arbitrary registered type name into a Go
// identifier: non-identifier characters become underscores, and the
// result is prefixed with TypeID to keep it a valid, readably-grouped
// constant name regardless of what punctuation the original name used
// (qualified names like "shapes.Circle" are common).
func constName(name string) string {
	var b strings.Builder
	b.WriteString("TypeID_")
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
