package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, signingSecret string) *Slack {
	return &Slack{
		botToken:      botToken,
		signingSecret: signingSecret,
	}
}

// NewOpenAIForTest creates an OpenAI config for testing purposes
func NewOpenAIForTest(apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		model:  model,
	}
}

// NewPersonaForTest creates a Persona config for testing purposes
func NewPersonaForTest(path string) *Persona {
	return &Persona{
		path: path,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
