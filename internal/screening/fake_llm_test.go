package screening

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// fakeLLM is a canned ChatClient. Prompts containing failMarker return an
// error; everything else echoes a deterministic response.
type fakeLLM struct {
	mu       sync.Mutex
	calls    []string
	response string
}

const failMarker = "[fail]"

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, user)
	f.mu.Unlock()

	if strings.Contains(user, failMarker) {
		return "", errors.New("model unavailable")
	}
	if f.response != "" {
		return f.response, nil
	}
	return "Looks like a solid applicant.", nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLLM) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}
