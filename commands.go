package main

import (
	"fmt"
	"strings"
)

const commandHelp = "commands: help, tick, who, pos"

// RunCommand executes one console line for connection id and returns the
// text to send back as CmdOutput
func (a *Arena) RunCommand(id ID, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return commandHelp
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch strings.ToLower(fields[0]) {
	case "help":
		return commandHelp
	case "tick":
		return fmt.Sprintf("tick %d", a.tick)
	case "who":
		return fmt.Sprintf("%d connections, %d entities", len(a.connections), len(a.entities))
	case "pos":
		e, ok := a.entities[id]
		if !ok {
			return "not spawned"
		}
		p := e.Position()
		return fmt.Sprintf("x=%.1f y=%.1f", p.X, p.Y)
	}
	return fmt.Sprintf("unknown command: %s", fields[0])
}
