package models

type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

type ChatTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

type ChatMessageRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

type ChatResponse struct {
	Open       bool       `json:"open"`
	Loading    bool       `json:"loading"`
	Transcript []ChatTurn `json:"transcript"`
}
