package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	lev "github.com/agnivade/levenshtein"
	"github.com/dustin/go-humanize"

	"termcommander/host/device"
)

// maxSuggestDistance bounds "did you mean" suggestions for mistyped meta commands
const maxSuggestDistance = 2

// consoleSession holds the state the meta commands report on
type consoleSession struct {
	dev     *device.Device
	started time.Time
}

type metaCommand struct {
	help string
	run  func(s *consoleSession, ctx context.Context) error
}

var metaCommands map[string]metaCommand

// help refers back to the table, so it is filled in init
func init() {
	metaCommands = map[string]metaCommand{
		"help":  {"show console commands", (*consoleSession).help},
		"quit":  {"exit the console", func(*consoleSession, context.Context) error { return errQuit }},
		"stats": {"show traffic counters", (*consoleSession).stats},
		"ports": {"list serial ports", func(*consoleSession, context.Context) error { return runList() }},
		"sync":  {"resynchronize with the device prompt", (*consoleSession).sync},
		"scan":  {"list I2C addresses that acknowledge", (*consoleSession).scan},
	}
}

// meta runs a ':' prefixed console command
func (s *consoleSession) meta(ctx context.Context, line string) error {
	name := strings.ToLower(strings.TrimPrefix(line, ":"))
	if cmd, ok := metaCommands[name]; ok {
		return cmd.run(s, ctx)
	}
	if guess := suggest(name, metaNames()); guess != "" {
		return fmt.Errorf("unknown console command :%s, did you mean :%s?", name, guess)
	}
	return fmt.Errorf("unknown console command :%s (try :help)", name)
}

func metaNames() []string {
	names := make([]string, 0, len(metaCommands))
	for name := range metaCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns the candidate closest to name, or "" if none is close
func suggest(name string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := lev.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (s *consoleSession) help(context.Context) error {
	fmt.Println("Console commands:")
	for _, name := range metaNames() {
		fmt.Printf("  :%-6s %s\n", name, metaCommands[name].help)
	}
	fmt.Println("Anything else is sent to the device.")
	return nil
}

func (s *consoleSession) stats(context.Context) error {
	fmt.Print(formatStats(s.dev.Stats(), s.dev.Dropped(), time.Since(s.started)))
	return nil
}

func formatStats(st device.Stats, dropped int, uptime time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Commands: %s (%s with errors)\n", humanize.Comma(int64(st.Commands)), humanize.Comma(int64(st.Errors)))
	fmt.Fprintf(&b, "Sent:     %s\n", humanize.Bytes(st.BytesSent))
	fmt.Fprintf(&b, "Received: %s\n", humanize.Bytes(st.BytesReceived))
	if dropped > 0 {
		fmt.Fprintf(&b, "Dropped:  %s\n", humanize.Comma(int64(dropped)))
	}
	fmt.Fprintf(&b, "Session:  %s\n", uptime.Truncate(time.Second))
	return b.String()
}

func (s *consoleSession) sync(ctx context.Context) error {
	if err := s.dev.Sync(ctx); err != nil {
		return err
	}
	fmt.Println("In sync")
	return nil
}

func (s *consoleSession) scan(ctx context.Context) error {
	found, err := s.dev.Scan(ctx)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("No devices")
		return nil
	}
	addrs := make([]string, len(found))
	for i, a := range found {
		addrs[i] = fmt.Sprintf("0x%02x", a)
	}
	fmt.Println(strings.Join(addrs, " "))
	return nil
}
