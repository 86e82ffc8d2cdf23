package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Translator is a static key lookup over per-language bundles. Nested
// bundle objects are flattened into dotted keys ("cart.empty").
type Translator struct {
	mu       sync.RWMutex
	bundles  map[string]map[string]string
	fallback string
}

func NewTranslator(fallback string) *Translator {
	return &Translator{bundles: make(map[string]map[string]string), fallback: fallback}
}

// LoadTranslator reads every <lang>.json, <lang>.yaml and <lang>.yml in dir.
// A missing directory yields an empty translator.
func LoadTranslator(dir, fallback string) (*Translator, error) {
	t := NewTranslator(fallback)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		lang := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := t.AddBundle(lang, ext, raw); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddBundle parses raw as JSON or YAML (by ext) and merges it into lang.
func (t *Translator) AddBundle(lang, ext string, raw []byte) error {
	tree := map[string]interface{}{}
	var err error
	if ext == ".json" {
		err = json.Unmarshal(raw, &tree)
	} else {
		err = yaml.Unmarshal(raw, &tree)
	}
	if err != nil {
		return fmt.Errorf("parse %s bundle: %w", lang, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	bundle, ok := t.bundles[lang]
	if !ok {
		bundle = make(map[string]string)
		t.bundles[lang] = bundle
	}
	flatten("", tree, bundle)
	return nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func (t *Translator) Fallback() string { return t.fallback }

func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	langs := make([]string, 0, len(t.bundles))
	for l := range t.bundles {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

func (t *Translator) Has(lang string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.bundles[lang]
	return ok
}

// Lookup tries lang, then the fallback language.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if v, ok := t.bundles[lang][key]; ok {
		return v, true
	}
	v, ok := t.bundles[t.fallback][key]
	return v, ok
}

// T returns the translation or the key itself.
func (t *Translator) T(lang, key string) string {
	return t.Message(lang, key, key)
}

// Message returns the translation or def.
func (t *Translator) Message(lang, key, def string) string {
	if v, ok := t.Lookup(lang, key); ok {
		return v
	}
	return def
}
