package rdf

import "testing"

func TestNamespaceRegistryDefaults(t *testing.T) {
	r := NewNamespaceRegistry()
	if uri, ok := r.LookupPrefix("rdf"); !ok || uri != rdfNS {
		t.Fatalf("expected default rdf prefix registered, got %s/%v", uri, ok)
	}
}

func TestNamespaceRegistryPrefixForAutoGenerates(t *testing.T) {
	r := NewNamespaceRegistry()
	prefix := r.PrefixFor("http://example.org/unregistered#")

	if prefix == "" {
		t.Fatal("expected a non-empty generated prefix")
	}
	if got, ok := r.LookupURI("http://example.org/unregistered#"); !ok || got != prefix {
		t.Fatalf("expected generated prefix to be registered, got %s/%v", got, ok)
	}

	again := r.PrefixFor("http://example.org/unregistered#")
	if again != prefix {
		t.Fatalf("expected PrefixFor to be stable across calls, got %s then %s", prefix, again)
	}
}

func TestNamespaceRegistryConcurrentAccess(t *testing.T) {
	r := NewNamespaceRegistry()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			r.PrefixFor("http://example.org/ns")
			_, _ = r.LookupPrefix("rdf")
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
