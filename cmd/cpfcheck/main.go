package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"validacpf/pkg/cpf"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

type verdict struct {
	Input  string `json:"input"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cpfcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "text", "Output format: 'text' or 'json'")
	explain := fs.Bool("explain", false, "Print which rule rejected each invalid CPF")
	mask := fs.Bool("mask", false, "Mask the middle digits in output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cpfcheck [options] [cpf ...]\n")
		fmt.Fprintf(stderr, "\nReads one CPF per line from stdin when no arguments are given.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *output != "text" && *output != "json" {
		fmt.Fprintf(stderr, "Error: unknown output format %q\n", *output)
		return exitUsage
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		lines, err := readLines(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading stdin: %v\n", err)
			return exitUsage
		}
		inputs = lines
	}

	code := exitValid
	enc := json.NewEncoder(stdout)
	for _, in := range inputs {
		v := check(in, *mask, *explain)
		if !v.Valid {
			code = exitInvalid
		}

		if *output == "json" {
			if err := enc.Encode(v); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return exitUsage
			}
			continue
		}
		printText(stdout, v)
	}

	return code
}

func check(in string, mask, explain bool) verdict {
	reason := cpf.Check(in)

	shown := cpf.Format(in)
	if mask {
		shown = cpf.Mask(in)
	}

	v := verdict{Input: shown, Valid: reason == cpf.Valid}
	if explain && !v.Valid {
		v.Reason = reason.String()
	}
	return v
}

func printText(w io.Writer, v verdict) {
	status := "invalid"
	if v.Valid {
		status = "valid"
	}
	if v.Reason != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", v.Input, status, v.Reason)
		return
	}
	fmt.Fprintf(w, "%s %s\n", v.Input, status)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
