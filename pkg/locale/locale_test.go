package locale

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/text/language"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   language.Tag
		wantOK bool
	}{
		{raw: "en-US", want: EnglishUS, wantOK: true},
		{raw: "en", want: EnglishUS, wantOK: true},
		{raw: "pt-BR", want: PortugueseBR, wantOK: true},
		{raw: "pt-br", want: PortugueseBR, wantOK: true},
		{raw: "pt", want: PortugueseBR, wantOK: true},
		{raw: "pt_BR", want: PortugueseBR, wantOK: true},
		{raw: "pt_BR.UTF-8", want: PortugueseBR, wantOK: true},
		{raw: "en_US.UTF-8@latin", want: EnglishUS, wantOK: true},
		{raw: "fr-FR", wantOK: false},
		{raw: "de", wantOK: false},
		{raw: "C", wantOK: false},
		{raw: "", wantOK: false},
		{raw: "!!", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDetectPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		signals    Signals
		wantTag    language.Tag
		wantSource Source
	}{
		{
			name:       "query wins",
			signals:    Signals{Query: "pt-BR", Cached: "en-US", Platform: "en-US"},
			wantTag:    PortugueseBR,
			wantSource: SourceQuery,
		},
		{
			name:       "cached beats platform",
			signals:    Signals{Cached: "pt-BR", Platform: "en_US.UTF-8"},
			wantTag:    PortugueseBR,
			wantSource: SourceCached,
		},
		{
			name:       "unsupported query skipped",
			signals:    Signals{Query: "fr", Platform: "pt_BR.UTF-8"},
			wantTag:    PortugueseBR,
			wantSource: SourcePlatform,
		},
		{
			name:       "fallback",
			signals:    Signals{Query: "ja", Cached: "", Platform: "C"},
			wantTag:    EnglishUS,
			wantSource: SourceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, source := Detect(tt.signals)
			if tag != tt.wantTag {
				t.Errorf("Expected tag %s, got %s", tt.wantTag, tag)
			}
			if source != tt.wantSource {
				t.Errorf("Expected source %s, got %s", tt.wantSource, source)
			}
		})
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "fr-FR,pt-BR;q=0.9,en;q=0.8", want: "pt-BR"},
		{header: "en;q=0.5,pt;q=0.9", want: "pt-BR"},
		{header: "de,fr", want: ""},
		{header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := FromAcceptLanguage(tt.header); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")
	store := NewFileStore(path)

	raw, err := store.Load()
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if raw != "" {
		t.Errorf("Expected empty preference, got '%s'", raw)
	}

	err = store.Save("pt-BR")
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	raw, err = store.Load()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if raw != "pt-BR" {
		t.Errorf("Expected 'pt-BR', got '%s'", raw)
	}
}

func TestFileStorePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	err := os.WriteFile(path, []byte(`{"theme":"dark","locale":"en-US"}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	err = NewFileStore(path).Save("pt-BR")
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(data) != `{"theme":"dark","locale":"pt-BR"}` {
		t.Errorf("Unexpected preferences content: %s", string(data))
	}
}

func TestFileStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	err := os.WriteFile(path, []byte("not json"), 0600)
	if err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err = NewFileStore(path).Load()
	if err == nil {
		t.Error("Expected error for malformed preferences, got nil")
	}
}

type memoryStore struct {
	mu    sync.Mutex
	value string
	saves int
}

func (m *memoryStore) Load() (raw string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw = m.value
	return raw, err
}

func (m *memoryStore) Save(raw string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = raw
	m.saves++
	return err
}

func TestServiceSwitch(t *testing.T) {
	store := &memoryStore{value: "pt-BR"}
	svc := NewService("", "en_US.UTF-8", store)

	if svc.Current() != PortugueseBR {
		t.Fatalf("Expected cached pt-BR, got %s", svc.Current())
	}
	if svc.Source() != SourceCached {
		t.Errorf("Expected cached source, got %s", svc.Source())
	}

	tag, err := svc.Switch("en")
	if err != nil {
		t.Fatalf("Failed to switch: %v", err)
	}
	if tag != EnglishUS || svc.Current() != EnglishUS {
		t.Errorf("Expected en-US after switch, got %s", svc.Current())
	}
	if store.value != "en-US" || store.saves != 1 {
		t.Errorf("Expected one save of 'en-US', got %d saves of '%s'", store.saves, store.value)
	}

	_, err = svc.Switch("klingon")
	if err == nil {
		t.Error("Expected error for unsupported locale, got nil")
	}
	if svc.Current() != EnglishUS {
		t.Errorf("Expected locale unchanged after failed switch, got %s", svc.Current())
	}
}

func TestServiceConcurrentSwitch(t *testing.T) {
	svc := NewService("", "", nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := "en-US"
			if i%2 == 0 {
				raw = "pt-BR"
			}
			_, _ = svc.Switch(raw)
			_ = svc.Current()
		}(i)
	}
	wg.Wait()

	if !IsSupported(svc.Current()) {
		t.Errorf("Expected a supported locale, got %s", svc.Current())
	}
}
