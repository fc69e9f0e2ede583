package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lxc/incus/shared/units"

	"llm-switch/src/discover"
	"llm-switch/src/switcher"
)

// Interactive renders choices as a cursor-driven terminal picker and the
// record list as a styled table. Free-form input (paths, confirmations)
// stays on plain line input.
type Interactive struct {
	in   io.Reader
	line *bufio.Reader
	out  io.Writer
}

func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{in: in, line: bufio.NewReader(in), out: out}
}

func (p *Interactive) ShowModels(records []discover.ModelRecord, active string) {
	header := fmt.Sprintf("%-3s %-14s %-44s %10s  %s", "#", "BACKEND", "MODEL", "SIZE", "MODIFIED")
	fmt.Fprintln(p.out, headerStyle.Render(header))
	for i, r := range records {
		row := fmt.Sprintf("%-3d %-14s %-44s %10s  %s", i+1, r.Backend, r.Name,
			units.GetByteSizeString(r.Size, 1), r.ModTime.Format("2006-01-02 15:04"))
		if active != "" && r.Name == active {
			fmt.Fprintln(p.out, activeStyle.Render(row+"  (active)"))
			continue
		}
		fmt.Fprintln(p.out, row)
	}
}

func (p *Interactive) ChooseModel(records []discover.ModelRecord) (discover.ModelRecord, error) {
	items := make([]string, len(records))
	for i, r := range records {
		items[i] = fmt.Sprintf("[%s] %s (%s)", r.Backend, r.Name, units.GetByteSizeString(r.Size, 1))
	}
	idx, err := runPicker("Select a model", items, p.in, p.out)
	if err != nil {
		return discover.ModelRecord{}, err
	}
	return records[idx], nil
}

func (p *Interactive) ChooseBackend(names []string) (string, error) {
	idx, err := runPicker("Select destination backend", names, p.in, p.out)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}

func (p *Interactive) ChooseMethod(def switcher.Method) (switcher.Method, error) {
	items := []string{
		"Copy (safe, uses disk space)",
		"Symlink (saves space, may need privileges)",
	}
	if def == switcher.MethodLink {
		items[0], items[1] = items[1], items[0]
	}
	idx, err := runPicker("How would you like to switch?", items, p.in, p.out)
	if err != nil {
		return "", err
	}
	picked := strings.HasPrefix(items[idx], "Symlink")
	if picked {
		return switcher.MethodLink, nil
	}
	return switcher.MethodCopy, nil
}

func (p *Interactive) Confirm(question string, def bool) (bool, error) {
	items := []string{"No", "Yes"}
	if def {
		items = []string{"Yes", "No"}
	}
	idx, err := runPicker(strings.TrimSpace(question), items, p.in, p.out)
	if err != nil {
		// Abstaining from a confirmation means declining it.
		return false, nil
	}
	return items[idx] == "Yes", nil
}

func (p *Interactive) AskPath(prompt string) (string, error) {
	fmt.Fprint(p.out, titleStyle.Render(strings.TrimSpace(prompt))+" (empty to cancel): ")
	line, err := p.line.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCancelled
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

func (p *Interactive) Notify(format string, args ...any) {
	fmt.Fprintln(p.out, noticeStyle.Render(fmt.Sprintf(format, args...)))
}
