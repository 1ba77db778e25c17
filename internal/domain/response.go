package domain

import "strings"

const envelopeVersion = "1.0"

// Card is a simple visual card shown in the companion app.
type Card struct {
	Title string
	Body  string
}

// Response is the spoken reply produced for one invocation. Speech may carry
// SSML markup without the outer <speak> element. OmitEndSession leaves the
// session flag out of the wire document so the platform ends the turn without
// opening the microphone.
type Response struct {
	Speech           string
	Reprompt         string
	Card             *Card
	ShouldEndSession bool
	OmitEndSession   bool
}

// IsEmpty reports whether the response carries nothing for the platform to render.
func (r Response) IsEmpty() bool {
	return r.Speech == "" && r.Reprompt == "" && r.Card == nil
}

// ResponseEnvelope is the outbound document returned to the voice platform.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          ResponseBody   `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *CardBody     `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type CardBody struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewResponseEnvelope renders a Response and the session bag into the wire
// document. Empty responses render an empty body, which the platform accepts
// for session-ended and skill events.
func NewResponseEnvelope(r Response, attrs Attributes) ResponseEnvelope {
	env := ResponseEnvelope{Version: envelopeVersion}
	if len(attrs) > 0 {
		env.SessionAttributes = attrs.Clone()
	}
	if r.IsEmpty() {
		return env
	}
	if r.Speech != "" {
		env.Response.OutputSpeech = ssml(r.Speech)
	}
	if r.Reprompt != "" {
		env.Response.Reprompt = &Reprompt{OutputSpeech: *ssml(r.Reprompt)}
	}
	if r.Card != nil {
		env.Response.Card = &CardBody{Type: "Simple", Title: r.Card.Title, Content: r.Card.Body}
	}
	if !r.OmitEndSession {
		end := r.ShouldEndSession
		env.Response.ShouldEndSession = &end
	}
	return env
}

func ssml(text string) *OutputSpeech {
	if !strings.HasPrefix(text, "<speak>") {
		text = "<speak>" + text + "</speak>"
	}
	return &OutputSpeech{Type: "SSML", SSML: text}
}
