package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

func Message(message string) Envelope {
	return Envelope{"message": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

// With adds a key to the envelope and returns it for chaining.
func (e Envelope) With(key string, value any) Envelope {
	e[key] = value
	return e
}

// Code attaches a machine-readable error code next to the human message.
func (e Envelope) Code(code string) Envelope {
	return e.With("code", code)
}
