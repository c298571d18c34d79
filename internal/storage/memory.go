package storage

// Memory is a map-backed Store. Nothing survives Close.
type Memory struct {
	data map[string]string
	// FailSet, when non-nil, is returned by every Set.
	FailSet error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Close() error {
	m.data = make(map[string]string)
	return nil
}
