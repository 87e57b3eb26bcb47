package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/risp/lang"
	"github.com/sergev/risp/parser"
	"github.com/sergev/risp/runtime"
)

func main() {
	ev := runtime.NewEvaluator()
	args := os.Args[1:]
	if len(args) > 0 {
		runtime.SetArgv(ev.Global, args)
		os.Exit(runScript(ev, args[0], os.Stdin, os.Stderr))
	}

	runtime.SetArgv(ev.Global, []string{})
	runREPL(ev)
}

// runScript evaluates a file, or stdin for "-", and returns the exit status.
// Every top-level form runs even when an earlier one produced an error.
func runScript(ev *lang.Evaluator, script string, stdin io.Reader, stderr io.Writer) int {
	var (
		results []lang.Value
		err     error
	)
	if script == "-" {
		results, err = runtime.EvaluateReader(ev, stdin)
	} else {
		results, err = runtime.EvaluateFile(ev, script)
	}
	if err != nil {
		fmt.Fprintf(stderr, "risp: %v\n", err)
		return 1
	}
	status := 0
	for _, val := range results {
		if val.Type == lang.TypeError {
			fmt.Fprintf(stderr, "risp: %s\n", val)
			status = 1
		}
	}
	return status
}

func runREPL(ev *lang.Evaluator) {
	if !isInteractive() {
		runBufferedREPL(ev, bufio.NewReader(os.Stdin), os.Stdout, os.Stderr)
		return
	}
	runInteractiveREPL(ev)
}

func runBufferedREPL(ev *lang.Evaluator, reader *bufio.Reader, stdout, stderr io.Writer) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffer.Len() == 0 && strings.TrimSpace(line) == "" {
					return
				}
			} else {
				fmt.Fprintf(stderr, "read error: %v\n", err)
				return
			}
		}
		if buffer.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		buffer.WriteString(line)
		val, evalErr := runtime.EvaluateLine(ev, buffer.String())
		if evalErr != nil {
			if parser.IsIncomplete(evalErr) && !errors.Is(err, io.EOF) {
				continue
			}
			fmt.Fprintf(stderr, "parse error: %v\n", evalErr)
			buffer.Reset()
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		buffer.Reset()
		fmt.Fprintln(stdout, val.String())
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func runInteractiveREPL(ev *lang.Evaluator) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "risp> "
		if buffer.Len() > 0 {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		if buffer.Len() == 0 && strings.TrimSpace(input) == "" {
			continue
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		val, evalErr := runtime.EvaluateLine(ev, src)
		if evalErr != nil {
			if parser.IsIncomplete(evalErr) {
				continue
			}
			fmt.Fprintf(os.Stderr, "parse error: %v\n", evalErr)
			buffer.Reset()
			continue
		}

		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
		fmt.Println(val.String())
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".risp_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
