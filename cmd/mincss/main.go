// Command mincss reads a CSS 2.1 stylesheet from standard input and
// parses it, printing diagnostics to standard error as it goes. With
// no flags it parses the whole pipeline and discards the result (this
// tool exists to exercise and debug the parser, not to transform
// stylesheets); "-l" stops after lexing and "-t" stops after building
// the untyped tree, each dumping that stage to standard output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/erkyrath/mincss"
)

func main() {
	lexerOnly := false
	treeOnly := false
	flag.BoolVar(&lexerOnly, "l", false, "stop after lexing and dump tokens")
	flag.BoolVar(&lexerOnly, "lexer", false, "stop after lexing and dump tokens")
	flag.BoolVar(&treeOnly, "t", false, "stop after building the untyped tree and dump it")
	flag.BoolVar(&treeOnly, "tree", false, "stop after building the untyped tree and dump it")
	flag.Parse()

	ctx := mincss.NewContext()
	ctx.SetErrorHandler(func(message string, line int) {
		fmt.Fprintf(os.Stderr, "MinCSS error: %s (line %d)\n", message, line)
	})

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch {
	case lexerOnly:
		ctx.SetTrace(mincss.TraceLexer, func(line string) { fmt.Fprintln(out, line) })
	case treeOnly:
		ctx.SetTrace(mincss.TraceTree, func(line string) { fmt.Fprintln(out, line) })
	}

	in := bufio.NewReader(os.Stdin)
	ctx.ParseBytesUTF8(func() int {
		b, err := in.ReadByte()
		if err != nil {
			return -1
		}
		return int(b)
	})

	os.Exit(0)
}
