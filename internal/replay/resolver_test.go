package replay

import (
	"errors"
	"testing"
)

func promptReturning(answer string, calls *int) PromptFunc {
	return func() (string, error) {
		*calls++
		return answer, nil
	}
}

func promptFailing(t *testing.T) PromptFunc {
	return func() (string, error) {
		t.Helper()
		t.Fatal("prompt invoked when a saved answer should replay")
		return "", nil
	}
}

func TestResolveReplaysSavedAnswer(t *testing.T) {
	store := NewStore(ModeBioSample)
	tmpl := Template{CatOutputOverwrite, TmplFileOverwrite, false}
	store.Set(tmpl, TmplFileOverwrite, "y")

	var echoed []string
	r := NewResolver(store, NewLog(), true)
	r.Echo = func(q, a string) { echoed = append(echoed, q+" "+a) }

	answer, err := r.Resolve("File out.tsv already exists. Overwrite? [y/N]: ", promptFailing(t))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if answer != "y" {
		t.Errorf("answer = %q, want y", answer)
	}
	if len(echoed) != 1 {
		t.Errorf("expected the replayed answer to be echoed once, got %v", echoed)
	}
	if r.Log.Len() != 1 {
		t.Errorf("replay must still log, log len = %d", r.Log.Len())
	}
}

func TestResolveMissingKeyPromptsOnceAndRecords(t *testing.T) {
	store := NewStore(ModeBioSample)
	r := NewResolver(store, NewLog(), true)

	calls := 0
	q := "Enter unit for 'depth' (or press Enter to skip): "
	answer, err := r.Resolve(q, promptReturning("m", &calls))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if answer != "m" || calls != 1 {
		t.Errorf("answer = %q calls = %d, want m and exactly one prompt", answer, calls)
	}
	if r.Log.Len() != 1 {
		t.Errorf("log len = %d, want 1", r.Log.Len())
	}
	tmpl := Template{CatNumericalUnits, TmplUnitForColumn, true}
	if saved, ok := store.Lookup(tmpl, q); !ok || saved != "m" {
		t.Errorf("store after prompt = (%q, %v), want (m, true)", saved, ok)
	}
}

func TestResolveReplayDisabledSkipsLookup(t *testing.T) {
	store := NewStore(ModeBioSample)
	tmpl := Template{CatOutputOverwrite, TmplFileOverwrite, false}
	store.Set(tmpl, TmplFileOverwrite, "y")

	r := NewResolver(store, NewLog(), false)
	calls := 0
	answer, err := r.Resolve("File out.tsv already exists. Overwrite? [y/N]:", promptReturning("n", &calls))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if answer != "n" || calls != 1 {
		t.Errorf("answer = %q calls = %d, want the prompted n", answer, calls)
	}
	// The fresh answer replaces the stored one.
	if saved, _ := store.Lookup(tmpl, TmplFileOverwrite); saved != "n" {
		t.Errorf("store = %q, want n", saved)
	}
}

func TestResolveNilStoreDegradesToPromptOnly(t *testing.T) {
	r := NewResolver(nil, NewLog(), true)
	calls := 0
	answer, err := r.Resolve("File out.tsv already exists. Overwrite? [y/N]:", promptReturning("y", &calls))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if answer != "y" || calls != 1 {
		t.Errorf("degraded mode should prompt, got answer %q calls %d", answer, calls)
	}
	if r.Log.Len() != 1 {
		t.Errorf("degraded mode still logs, log len = %d", r.Log.Len())
	}
}

func TestResolveUnclassifiedQuestionIsLogOnly(t *testing.T) {
	store := NewStore(ModeBioSample)
	r := NewResolver(store, NewLog(), true)

	calls := 0
	if _, err := r.Resolve("A question no rule knows?", promptReturning("ok", &calls)); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if r.Log.Len() != 1 {
		t.Errorf("log len = %d, want 1", r.Log.Len())
	}

	// Asking again prompts again: nothing was stored to replay.
	if _, err := r.Resolve("A question no rule knows?", promptReturning("ok", &calls)); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if r.Log.Len() != 1 {
		t.Errorf("re-asking replaces the log record, log len = %d", r.Log.Len())
	}
}

func TestResolvePromptErrorPropagates(t *testing.T) {
	r := NewResolver(NewStore(ModeSRA), NewLog(), true)
	wantErr := errors.New("stdin closed")
	_, err := r.Resolve("Do you want to use all assays or only specific ones? [all/specific]:", func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want the prompt error", err)
	}
	if r.Log.Len() != 0 {
		t.Errorf("failed prompt must not log, log len = %d", r.Log.Len())
	}
}

func TestResolveOnceIgnoresSavedAnswer(t *testing.T) {
	store := NewStore(ModeBioSample)
	tmpl := Template{CatConfigFile, TmplConfigOverwrite, false}
	store.Set(tmpl, TmplConfigOverwrite, "y")

	r := NewResolver(store, NewLog(), true)
	calls := 0
	answer, err := r.ResolveOnce("Configuration file x_config.yaml already exists. Do you want to overwrite it? [y/N]:", promptReturning("n", &calls))
	if err != nil {
		t.Fatalf("ResolveOnce: %v", err)
	}
	if answer != "n" || calls != 1 {
		t.Errorf("ResolveOnce must prompt despite the saved answer, got %q calls %d", answer, calls)
	}
	if !r.Replay {
		t.Error("ResolveOnce must restore the replay flag")
	}
}
