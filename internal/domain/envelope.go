package domain

import "time"

// Request types sent by the voice platform.
const (
	RequestLaunch             = "LaunchRequest"
	RequestIntent             = "IntentRequest"
	RequestSessionEnded       = "SessionEndedRequest"
	RequestExceptionEncounter = "System.ExceptionEncountered"
	RequestSkillDisabled      = "AlexaSkillEvent.SkillDisabled"
)

// Intent names recognised by the skill.
const (
	IntentSayHi    = "sayHiIntent"
	IntentGetName  = "GetNameIntent"
	IntentHelp     = "AMAZON.HelpIntent"
	IntentCancel   = "AMAZON.CancelIntent"
	IntentStop     = "AMAZON.StopIntent"
	IntentFallback = "AMAZON.FallbackIntent"
)

// SlotName is the slot carrying the spoken name on GetNameIntent.
const SlotName = "name"

// RequestEnvelope is the inbound event delivered by the voice platform.
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Context Context  `json:"context"`
	Request Request  `json:"request"`
}

type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	User        User           `json:"user"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

type Context struct {
	System System `json:"System"`
}

type System struct {
	Application Application `json:"application"`
	User        User        `json:"user"`
	Device      *Device     `json:"device,omitempty"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

type Device struct {
	DeviceID string `json:"deviceId"`
}

// Request is the typed body of the envelope. Intent is set for IntentRequest,
// Reason for session-end and exception events, Error for exception events.
type Request struct {
	Type      string        `json:"type"`
	RequestID string        `json:"requestId"`
	Timestamp string        `json:"timestamp"`
	Locale    string        `json:"locale,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Intent    *Intent       `json:"intent,omitempty"`
	Error     *RequestError `json:"error,omitempty"`
}

type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type RequestError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// IsNewSession reports whether the envelope opens a session. Out-of-session
// events (skill events) carry no session and are never new.
func (e RequestEnvelope) IsNewSession() bool {
	return e.Session != nil && e.Session.New
}

// UserID returns the persistence key for the envelope.
func (e RequestEnvelope) UserID() string {
	if e.Context.System.User.UserID != "" {
		return e.Context.System.User.UserID
	}
	if e.Session != nil {
		return e.Session.User.UserID
	}
	return ""
}

// ApplicationID returns the skill id the envelope was addressed to.
func (e RequestEnvelope) ApplicationID() string {
	if e.Context.System.Application.ApplicationID != "" {
		return e.Context.System.Application.ApplicationID
	}
	if e.Session != nil {
		return e.Session.Application.ApplicationID
	}
	return ""
}

// IntentName returns the intent name for IntentRequest envelopes and "" otherwise.
func (e RequestEnvelope) IntentName() string {
	if e.Request.Type != RequestIntent || e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// SlotValue returns the recognised value for a slot on the current intent.
func (e RequestEnvelope) SlotValue(name string) (string, bool) {
	if e.Request.Intent == nil {
		return "", false
	}
	slot, ok := e.Request.Intent.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

// RequestTime parses the request timestamp.
func (e RequestEnvelope) RequestTime() (time.Time, bool) {
	if e.Request.Timestamp == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, e.Request.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
