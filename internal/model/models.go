package model

// All lists every table owned by the record store, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&File{},
		&ChatMessage{},
	}
}
