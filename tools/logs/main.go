// tools/logs is a dev tool for reading glare.log with colors
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/torch-corp/glare/internal/cache"
)

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	runStyle   = lipgloss.NewStyle().Faint(true)
	attrStyle  = lipgloss.NewStyle().Faint(true)
	levelStyle = map[string]lipgloss.Style{
		"ERROR": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		"WARN":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
	levelShort = map[string]string{"ERROR": "ERR", "WARN": "WRN", "INFO": "INF", "DEBUG": "DBG"}

	// key=value or key="quoted value"
	attrPattern = regexp.MustCompile(`(\w+)=("(?:[^"\\]|\\.)*"|\S+)`)
)

// record is one slog text line split into its fixed fields and the rest
type record struct {
	time, level, msg, run string
	attrs                 []string
}

func main() {
	lines := flag.Int("n", 20, "number of lines to show before following")
	filter := flag.String("f", "", "only show lines containing this substring (e.g., -f update)")
	run := flag.String("r", "", "only show lines from one invocation (run id prefix)")
	follow := flag.Bool("follow", true, "keep reading as new lines are written")
	flag.Parse()

	cacheDir, err := cache.GetCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not determine log path: %v\n", err)
		os.Exit(1)
	}
	logPath := filepath.Join(cacheDir, "glare.log")

	fmt.Println(lipgloss.NewStyle().Bold(true).Render(logPath))
	fmt.Println(strings.Repeat("-", 39))

	match := func(line string) bool {
		if *filter != "" && !strings.Contains(line, *filter) {
			return false
		}
		return *run == "" || strings.HasPrefix(parse(line).run, *run)
	}

	file, err := os.Open(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	for _, line := range tail(file, *lines, match) {
		fmt.Println(render(parse(line)))
	}
	if *follow {
		followFile(file, match)
	}
}

// tail returns the last n matching lines, reading only the end of the file
func tail(file *os.File, n int, match func(string) bool) []string {
	stat, err := file.Stat()
	if err != nil {
		return nil
	}

	// slog text lines are short; 1KB each leaves plenty of margin
	start := max(0, stat.Size()-int64(n*1024*4))
	if _, err := file.Seek(start, io.SeekStart); err != nil {
		start = 0
		_, _ = file.Seek(0, io.SeekStart)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if start > 0 {
		scanner.Scan() // partial line
	}

	var out []string
	for scanner.Scan() {
		if line := scanner.Text(); match(line) {
			out = append(out, line)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func followFile(file *os.File, match func(string) bool) {
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return
	}

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return
		}
		line = strings.TrimRight(line, "\n")
		if match(line) {
			fmt.Println(render(parse(line)))
		}
	}
}

// parse splits a slog text line: time=... level=INFO msg="..." run=... k=v
func parse(line string) record {
	var r record
	for _, m := range attrPattern.FindAllStringSubmatch(line, -1) {
		key, value := m[1], m[2]
		switch key {
		case "time":
			r.time = value
		case "level":
			r.level = value
		case "msg":
			r.msg = strings.Trim(value, `"`)
		case "run":
			r.run = value
		default:
			r.attrs = append(r.attrs, key+"="+value)
		}
	}
	if r.level == "" && r.msg == "" {
		r.msg = line
	}
	return r
}

func render(r record) string {
	var sb strings.Builder

	if r.time != "" {
		t := r.time
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			t = parsed.Format("15:04:05")
		}
		sb.WriteString(timeStyle.Render(t) + " ")
	}
	if r.run != "" {
		sb.WriteString(runStyle.Render(r.run[:min(8, len(r.run))]) + " ")
	}
	if r.level != "" {
		short, ok := levelShort[r.level]
		if !ok {
			short = r.level
		}
		sb.WriteString(levelStyle[r.level].Render(short) + " ")
	}
	sb.WriteString(r.msg)
	if len(r.attrs) > 0 {
		sb.WriteString(" " + attrStyle.Render(strings.Join(r.attrs, " ")))
	}

	return sb.String()
}
