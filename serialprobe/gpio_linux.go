package serialprobe

import (
	"fmt"
	"os"
	"strconv"
)

// sysfsGPIO drives one GPIO line through the kernel's sysfs GPIO interface.
// There is no third-party GPIO library anywhere in the reference corpus, so
// this one corner stays plain file I/O (see DESIGN.md).
type sysfsGPIO struct {
	line int
}

func newSysfsGPIO(line int) (*sysfsGPIO, error) {
	g := &sysfsGPIO{line: line}
	if err := g.export(); err != nil {
		return nil, err
	}
	if err := g.writeFile("direction", "out"); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *sysfsGPIO) export() error {
	path := fmt.Sprintf("/sys/class/gpio/gpio%d", g.line)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	f, err := os.OpenFile("/sys/class/gpio/export", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(strconv.Itoa(g.line))
	return err
}

func (g *sysfsGPIO) writeFile(name, value string) error {
	path := fmt.Sprintf("/sys/class/gpio/gpio%d/%s", g.line, name)
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(value)
	return err
}

func (g *sysfsGPIO) Set(high bool) error {
	v := "0"
	if high {
		v = "1"
	}
	return g.writeFile("value", v)
}
