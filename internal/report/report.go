// Package report prints run status to the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

// Reporter receives the status lines of a run.
type Reporter interface {
	// Section opens a block for one sample or step.
	Section(title string)
	// Field prints one "key : value" settings line.
	Field(key, value string)
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Count(label string, n int64)
	Blank()
}

// Console writes coloured output to w.
type Console struct {
	w       io.Writer
	section *color.Color
	success *color.Color
	warn    *color.Color
	count   *color.Color
}

func NewConsole(w io.Writer) *Console {
	return &Console{
		w:       w,
		section: color.New(color.FgYellow),
		success: color.New(color.FgHiGreen),
		warn:    color.New(color.FgHiRed),
		count:   color.New(color.FgHiMagenta),
	}
}

func (c *Console) Section(title string) {
	c.section.Fprintf(c.w, "================Processing %s================\n", title)
}

func (c *Console) Field(key, value string) {
	fmt.Fprintf(c.w, "%s\t: %s\n", key, value)
}

func (c *Console) Info(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) Success(format string, args ...interface{}) {
	c.success.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.warn.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) Count(label string, n int64) {
	c.count.Fprintf(c.w, "%s: %s\n", label, Comma(n))
}

func (c *Console) Blank() {
	fmt.Fprintln(c.w)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Section(string)                 {}
func (Nop) Field(string, string)           {}
func (Nop) Info(string, ...interface{})    {}
func (Nop) Success(string, ...interface{}) {}
func (Nop) Warn(string, ...interface{})    {}
func (Nop) Count(string, int64)            {}
func (Nop) Blank()                         {}

// Comma formats value with thousands separators.
func Comma(value int64) string {
	if value < 0 {
		return "-" + Comma(-value)
	}
	str := strconv.FormatInt(value, 10)
	result := make([]byte, 0, len(str)+len(str)/3)
	for i := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return string(result)
}
