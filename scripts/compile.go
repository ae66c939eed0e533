package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/midbel/tabula/formula"
	"github.com/midbel/tabula/grid"
)

func main() {
	eval := flag.Bool("e", false, "evaluate formulas without references")
	flag.Parse()

	r, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer r.Close()

	var (
		scan   = bufio.NewScanner(r)
		failed bool
	)
	for scan.Scan() {
		src := strings.TrimSpace(scan.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		prog, err := formula.Compile(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", src, err)
			failed = true
			continue
		}
		fmt.Printf("%s => %s\n", src, prog)
		if refs := prog.Addresses(); len(refs) > 0 {
			fmt.Println("  references:", refs)
			continue
		}
		if !*eval {
			continue
		}
		res, err := grid.Eval(prog, grid.Values{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s\n", err)
			failed = true
			continue
		}
		fmt.Println("  result:", res)
	}
	if failed {
		os.Exit(1)
	}
}
