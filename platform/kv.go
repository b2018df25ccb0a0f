package platform

import "sync"

// KV is a string-keyed store with synchronous reads and writes, the
// contract shared by persistent and session-scoped stores.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV is a map-backed KV used for session scopes and tests.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *MemoryKV) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	m.mu.Lock()
	v, ok := m.data[key]
	m.mu.Unlock()
	return v, ok
}

// Set stores value under key.
func (m *MemoryKV) Set(key, value string) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

// Delete removes key from the store.
func (m *MemoryKV) Delete(key string) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// CookieAttrs are the attributes applied when writing a cookie.
type CookieAttrs struct {
	Path     string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
}

// CookieJar is a named-cookie store.
type CookieJar interface {
	Cookie(name string) (string, bool)
	SetCookie(name, value string, attrs CookieAttrs) error
	ClearCookie(name string) error
}

// MemoryJar is a map-backed CookieJar for tests and headless use.
type MemoryJar struct {
	mu      sync.Mutex
	cookies map[string]string
}

// NewMemoryJar creates an empty jar.
func NewMemoryJar() *MemoryJar {
	return &MemoryJar{cookies: make(map[string]string)}
}

// Cookie returns the value of a named cookie.
func (j *MemoryJar) Cookie(name string) (string, bool) {
	if j == nil {
		return "", false
	}
	j.mu.Lock()
	v, ok := j.cookies[name]
	j.mu.Unlock()
	return v, ok
}

// SetCookie stores a cookie. Attributes are accepted but not enforced by
// the in-memory jar.
func (j *MemoryJar) SetCookie(name, value string, _ CookieAttrs) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	if j.cookies == nil {
		j.cookies = make(map[string]string)
	}
	j.cookies[name] = value
	j.mu.Unlock()
	return nil
}

// ClearCookie removes a named cookie.
func (j *MemoryJar) ClearCookie(name string) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	delete(j.cookies, name)
	j.mu.Unlock()
	return nil
}

// JarKV adapts a CookieJar to the KV contract so store bindings work over
// cookies unchanged. The attrs apply to every write.
func JarKV(jar CookieJar, attrs CookieAttrs) KV {
	return jarKV{jar: jar, attrs: attrs}
}

type jarKV struct {
	jar   CookieJar
	attrs CookieAttrs
}

func (j jarKV) Get(key string) (string, bool) {
	if j.jar == nil {
		return "", false
	}
	return j.jar.Cookie(key)
}

func (j jarKV) Set(key, value string) error {
	if j.jar == nil {
		return nil
	}
	return j.jar.SetCookie(key, value, j.attrs)
}

func (j jarKV) Delete(key string) error {
	if j.jar == nil {
		return nil
	}
	return j.jar.ClearCookie(key)
}
