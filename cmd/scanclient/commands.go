package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
)

type commandKind int

const (
	cmdScan commandKind = iota
	cmdStructured
	cmdRemove
	cmdClear
	cmdList
	cmdSummary
	cmdSend
	cmdDeliveryNote
	cmdHelp
	cmdQuit
	cmdEmpty
)

type command struct {
	kind  commandKind
	code  string
	index int
	arg   string
}

var errUsage = errors.New("unknown command, type :help")

// parseCommand turns one input line into a command. Anything not starting
// with ':' is a scanned code, taken verbatim apart from the line ending.
func parseCommand(line string) (command, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return command{kind: cmdEmpty}, nil
	}
	if !strings.HasPrefix(line, ":") {
		return command{kind: cmdScan, code: line}, nil
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return command{}, errUsage
	}

	switch fields[0] {
	case "s":
		args := fields[1:]
		if len(args) < 3 || len(args) > 4 {
			return command{}, errors.New("usage: :s <order> <article> <batch> [weight]")
		}
		weight := ""
		if len(args) == 4 {
			weight = args[3]
		}
		for _, a := range args {
			if strings.Contains(a, qrcode.Delimiter) {
				return command{}, fmt.Errorf("fields may not contain %q", qrcode.Delimiter)
			}
		}
		return command{kind: cmdStructured, code: qrcode.JoinStructured(args[0], args[1], args[2], weight)}, nil
	case "rm":
		if len(fields) != 2 {
			return command{}, errors.New("usage: :rm <number>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return command{}, errors.New("usage: :rm <number>")
		}
		// shown numbers start at 1
		return command{kind: cmdRemove, index: n - 1}, nil
	case "dn":
		if len(fields) != 2 {
			return command{}, errors.New("usage: :dn <delivery note number>")
		}
		return command{kind: cmdDeliveryNote, arg: fields[1]}, nil
	case "clear":
		return command{kind: cmdClear}, nil
	case "list", "ls":
		return command{kind: cmdList}, nil
	case "sum":
		return command{kind: cmdSummary}, nil
	case "send":
		return command{kind: cmdSend}, nil
	case "help", "h":
		return command{kind: cmdHelp}, nil
	case "quit", "q":
		return command{kind: cmdQuit}, nil
	}
	return command{}, errUsage
}

const helpText = `Scan a code, or type it and press Enter.
  :s <order> <article> <batch> [weight]   add a structured code by hand
  :dn <number>                            set the delivery note number
  :rm <n>                                 remove code number n
  :clear                                  empty the list
  :list                                   show scanned codes
  :sum                                    show orders and total weight
  :send                                   save and e-mail the report
  :quit                                   exit`
