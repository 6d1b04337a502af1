package replay

import (
	"fmt"
	"os"
)

// PromptFunc collects one answer interactively. Errors are fatal to
// the run and propagate uncaught through Resolve.
type PromptFunc func() (string, error)

// Resolver implements get-or-ask: replay a saved answer when one
// exists, otherwise prompt and record the result.
//
// A nil Store puts the resolver in degraded mode: every call prompts
// and only the chronological log is maintained. Replay false (no
// config file supplied by the user) skips lookups but still records.
type Resolver struct {
	Store  *Store
	Log    *Log
	Replay bool

	// Echo is called when a saved answer is reused, so the transcript
	// reads as if the user had just answered. Defaults to printing
	// "question answer" on stdout.
	Echo func(question, answer string)
}

// NewResolver wires a resolver over a store and log.
func NewResolver(store *Store, log *Log, replay bool) *Resolver {
	return &Resolver{Store: store, Log: log, Replay: replay}
}

// Resolve returns the answer for a question, replaying a saved one
// when possible. Every call writes exactly one log record; the store
// is written only when the question classifies.
func (r *Resolver) Resolve(question string, prompt PromptFunc) (string, error) {
	q := Normalize(question)

	if r.Store != nil && r.Replay {
		if t, ok := Classify(r.Store.Mode(), q); ok {
			if answer, found := r.Store.Lookup(t, q); found {
				r.echo(q, answer)
				r.Log.Upsert(q, answer)
				return answer, nil
			}
		}
	}

	answer, err := prompt()
	if err != nil {
		return "", err
	}
	r.Log.Upsert(q, answer)
	if r.Store != nil {
		if t, ok := Classify(r.Store.Mode(), q); ok {
			r.Store.Set(t, q, answer)
		}
	}
	return answer, nil
}

// ResolveOnce behaves like Resolve with replay disabled for this one
// decision. Used for questions about the config file's own existence,
// which must never be answered from the file being asked about.
func (r *Resolver) ResolveOnce(question string, prompt PromptFunc) (string, error) {
	saved := r.Replay
	r.Replay = false
	answer, err := r.Resolve(question, prompt)
	r.Replay = saved
	return answer, err
}

func (r *Resolver) echo(question, answer string) {
	if r.Echo != nil {
		r.Echo(question, answer)
		return
	}
	fmt.Fprintf(os.Stdout, "%s %s\n", question, answer)
}
