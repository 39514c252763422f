package draft

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Ameysr/codex-frontend/internal/api"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	if s == nil {
		t.Fatal("expected non-nil Store")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageCPP}
	code := "int main() { return 0; }"

	s.Save(key, code)

	got, ok := s.Load(key)
	if !ok {
		t.Fatal("Load() returned false, want true")
	}
	if got != code {
		t.Errorf("Load() = %q, want %q", got, code)
	}
}

func TestLoadNeverSaved(t *testing.T) {
	s := NewStore()
	got, ok := s.Load(Key{ProblemID: "nope", Language: api.LanguageJava})
	if ok {
		t.Error("Load() returned true for never-saved key, want false")
	}
	if got != "" {
		t.Errorf("Load() = %q, want %q", got, "")
	}
}

// An empty string is a deliberate saved state (user deleted all code) and
// must stay distinguishable from a never-saved key.
func TestSaveEmptyIsKept(t *testing.T) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageCPP}

	s.Save(key, "something")
	s.Save(key, "")

	got, ok := s.Load(key)
	if !ok {
		t.Fatal("Load() returned false after saving empty string, want true")
	}
	if got != "" {
		t.Errorf("Load() = %q, want empty string", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSaveOverwrite(t *testing.T) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageJavaScript}

	s.Save(key, "first")
	s.Save(key, "second")

	got, ok := s.Load(key)
	if !ok {
		t.Fatal("Load() returned false, want true")
	}
	if got != "second" {
		t.Errorf("Load() = %q, want %q", got, "second")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestLanguageIsolation(t *testing.T) {
	s := NewStore()
	s.Save(Key{ProblemID: "p1", Language: api.LanguageCPP}, "cpp code")
	s.Save(Key{ProblemID: "p1", Language: api.LanguageJava}, "java code")

	got, _ := s.Load(Key{ProblemID: "p1", Language: api.LanguageCPP})
	if got != "cpp code" {
		t.Errorf("Load(cpp) = %q, want %q", got, "cpp code")
	}
	got, _ = s.Load(Key{ProblemID: "p1", Language: api.LanguageJava})
	if got != "java code" {
		t.Errorf("Load(java) = %q, want %q", got, "java code")
	}
}

func TestClearRemovesAllLanguages(t *testing.T) {
	s := NewStore()
	s.Save(Key{ProblemID: "p1", Language: api.LanguageCPP}, "A")
	s.Save(Key{ProblemID: "p1", Language: api.LanguageJava}, "B")
	s.Save(Key{ProblemID: "p2", Language: api.LanguageCPP}, "C")

	s.Clear("p1")

	if _, ok := s.Load(Key{ProblemID: "p1", Language: api.LanguageCPP}); ok {
		t.Error("Load(p1/cpp) returned true after Clear, want false")
	}
	if _, ok := s.Load(Key{ProblemID: "p1", Language: api.LanguageJava}); ok {
		t.Error("Load(p1/java) returned true after Clear, want false")
	}
	if _, ok := s.Load(Key{ProblemID: "p2", Language: api.LanguageCPP}); !ok {
		t.Error("Load(p2/cpp) returned false, want true (other problem untouched)")
	}
}

func TestClearAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Save(Key{ProblemID: "p1", Language: api.LanguageCPP}, "A")

	s.Clear("never-saved")

	if s.Len() != 1 {
		t.Errorf("Len() = %d after clearing absent scope, want 1", s.Len())
	}
}

func TestUnicodeDraft(t *testing.T) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageJavaScript}
	code := "// コメント 👋\nconsole.log('héllo');"

	s.Save(key, code)

	got, _ := s.Load(key)
	if got != code {
		t.Errorf("Load() = %q, want %q", got, code)
	}
}

func TestLargeDraft(t *testing.T) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageCPP}
	code := strings.Repeat("x", 1_000_000)

	s.Save(key, code)

	got, _ := s.Load(key)
	if len(got) != len(code) {
		t.Errorf("Load() length = %d, want %d", len(got), len(code))
	}
}

func TestConcurrentSaveLoad(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := Key{ProblemID: fmt.Sprintf("p%d-%d", id, j), Language: api.LanguageCPP}
				s.Save(key, strings.Repeat("c", j))
				s.Load(key)
				s.Has(key)
			}
		}(i)
	}

	wg.Wait()
}

func BenchmarkStoreSave(b *testing.B) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageCPP}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Save(key, "benchmark draft")
	}
}

func BenchmarkStoreLoad(b *testing.B) {
	s := NewStore()
	key := Key{ProblemID: "p1", Language: api.LanguageCPP}
	s.Save(key, "benchmark draft")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Load(key)
	}
}
