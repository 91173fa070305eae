// Package repl reads config declarations line by line and echoes the
// parsed form back, which is handy for poking at the scanner and parser.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"rapcfg/internal/parser"
	"rapcfg/internal/report"
)

const PROMPT = ">> "

func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		file, errs := parser.ParseSource("repl", line)
		if len(errs) > 0 {
			reporter := report.NewReporter("repl", line)
			fmt.Fprint(out, reporter.FormatAll(report.FromParseErrors(errs)))
			continue
		}

		fmt.Fprintf(out, "%s", file.String())
	}
}
