package core

import "testing"

func TestSubscriptions(t *testing.T) {
	var s Subscriptions
	var got []string

	cancelA := s.Add("a", func(key string) { got = append(got, "a:"+key) })
	s.Add("b", func(key string) { got = append(got, "b:"+key) })

	s.Fire("a")
	s.Fire("c")
	if len(got) != 1 || got[0] != "a:a" {
		t.Fatalf("unexpected callbacks: %v", got)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	cancelA()
	s.Fire("a")
	if len(got) != 1 {
		t.Fatalf("cancelled callback still fired: %v", got)
	}
}

func TestSubscriptions_CallbackMayCancel(t *testing.T) {
	var s Subscriptions
	calls := 0
	var cancel func()
	cancel = s.Add("k", func(string) {
		calls++
		cancel()
	})

	s.Fire("k")
	s.Fire("k")
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
