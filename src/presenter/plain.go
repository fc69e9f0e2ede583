package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lxc/incus/shared/units"

	"llm-switch/src/discover"
	"llm-switch/src/switcher"
)

// Plain is the non-interactive fallback: numbered menus over line input, a
// tabwriter table for the record list. Entering 0 (or EOF) cancels a menu.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

func (p *Plain) ShowModels(records []discover.ModelRecord, active string) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tBACKEND\tMODEL\tSIZE\tMODIFIED")
	for i, r := range records {
		marker := ""
		if active != "" && r.Name == active {
			marker = " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s%s\t%s\t%s\n", i+1, r.Backend, r.Name, marker,
			units.GetByteSizeString(r.Size, 1), r.ModTime.Format("2006-01-02 15:04"))
	}
	tw.Flush()
	if active != "" {
		fmt.Fprintln(p.out, "* currently active model")
	}
}

func (p *Plain) ChooseModel(records []discover.ModelRecord) (discover.ModelRecord, error) {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = fmt.Sprintf("[%s] %s (%s)", r.Backend, r.Name, units.GetByteSizeString(r.Size, 1))
	}
	idx, err := p.menu("Select a model:", labels)
	if err != nil {
		return discover.ModelRecord{}, err
	}
	return records[idx], nil
}

func (p *Plain) ChooseBackend(names []string) (string, error) {
	idx, err := p.menu("Select destination backend:", names)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}

func (p *Plain) ChooseMethod(def switcher.Method) (switcher.Method, error) {
	d := "c"
	if def == switcher.MethodLink {
		d = "s"
	}
	fmt.Fprintf(p.out, "Copy or symlink? (c/s) [%s]: ", d)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCancelled
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "symlink", "link":
		return switcher.MethodLink, nil
	case "c", "copy":
		return switcher.MethodCopy, nil
	case "":
		return def, nil
	}
	return def, nil
}

func (p *Plain) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s (%s): ", strings.TrimSpace(question), hint)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return def, nil
	}
	return false, nil
}

func (p *Plain) AskPath(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s (empty to cancel): ", strings.TrimSpace(prompt))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCancelled
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

func (p *Plain) Notify(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// menu prints numbered options and reads a 1-based selection. 0, a blank
// line, or EOF cancels.
func (p *Plain) menu(title string, options []string) (int, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%3d. %s\n", i+1, opt)
	}
	fmt.Fprintln(p.out, "  0. Cancel")
	fmt.Fprint(p.out, "Enter number: ")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, ErrCancelled
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(options) {
		return 0, ErrCancelled
	}
	return n - 1, nil
}
