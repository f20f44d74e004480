package storage

func NewTestStorage() *LevelDBBackend {
	st, err := NewStorage(&Config{Scheme: "memory"})
	if err != nil {
		panic(err)
	}

	return st
}
