package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	Text string
}

// ResponseSchema is the JSON document the model is asked to produce.
type ResponseSchema struct {
	Cards []CardSchema `json:"cards"`
}

// CardSchema represents a single flashcard in the API response
type CardSchema struct {
	// Front is the question side of the flashcard
	Front string `json:"front"`

	// Back is the answer side of the flashcard
	Back string `json:"back"`
}
