package command

import (
	"context"
	"fmt"
	"strings"
)

// Response is a scripted result for Fake
type Response struct {
	Output string
	Err    error
}

// Fake is a Runner that replays scripted responses keyed by command name.
// Commands without a response fail as if the binary were missing.
type Fake struct {
	Responses map[string]Response
	Calls     [][]string
}

func NewFake() *Fake {
	return &Fake{Responses: make(map[string]Response)}
}

// On scripts the response for name
func (f *Fake) On(name, output string, err error) *Fake {
	f.Responses[name] = Response{Output: output, Err: err}
	return f
}

func (f *Fake) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.Calls = append(f.Calls, append([]string{name}, args...))
	resp, ok := f.Responses[name]
	if !ok {
		return nil, fmt.Errorf("%s: executable file not found in $PATH", name)
	}
	return []byte(resp.Output), resp.Err
}

// Called reports whether name was invoked
func (f *Fake) Called(name string) bool {
	for _, c := range f.Calls {
		if c[0] == name {
			return true
		}
	}
	return false
}

// CommandLine returns the first invocation of name joined by spaces
func (f *Fake) CommandLine(name string) string {
	for _, c := range f.Calls {
		if c[0] == name {
			return strings.Join(c, " ")
		}
	}
	return ""
}
