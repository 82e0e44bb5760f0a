package llm

import "context"

// MockClient permite tests sin llamar a un modelo real.
type MockClient struct {
	Response string
	Err      error
	Calls    []MockCall
}

type MockCall struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
}

func (m *MockClient) Chat(_ context.Context, model, systemPrompt, userPrompt string) (string, error) {
	m.Calls = append(m.Calls, MockCall{Model: model, SystemPrompt: systemPrompt, UserPrompt: userPrompt})
	return m.Response, m.Err
}
