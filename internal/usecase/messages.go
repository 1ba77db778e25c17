package usecase

import "fmt"

const DefaultSkillName = "hello guru"

// messages is the fixed speech table for one skill name.
type messages struct {
	skillName    string
	welcome      string
	requestName  string
	goodbye      string
	apology      string
	help         string
	unknown      string
	anythingElse string
}

func newMessages(skillName string) messages {
	return messages{
		skillName:    skillName,
		welcome:      fmt.Sprintf("Welcome to %s. Please tell me your name.", skillName),
		requestName:  "Can you tell me your name?",
		goodbye:      fmt.Sprintf("I hope %s helped you today. See ya", skillName),
		apology:      "Oops, something went wrong. Please try again later.",
		help:         fmt.Sprintf("%s can help you find your mobile phone. Just say 'alexa, ask %s to call my mobile'. What would you like to do?", skillName, skillName),
		unknown:      fmt.Sprintf("Sorry, %s didn't understand that. Please try again.", skillName),
		anythingElse: "What can I do for you?",
	}
}

func (m messages) greeting(name string) string {
	return fmt.Sprintf("<say-as interpret-as='interjection'>g'day %s</say-as>.<break time='1s'/> What can I do for you today?", name)
}

func (m messages) niceToMeet(name string) string {
	return fmt.Sprintf("Nice to meet you %s. How can I help you?", name)
}

func (m messages) niceToMeetCard(name string) string {
	return fmt.Sprintf("Nice to meet you %s", name)
}

func (m messages) farewell(name string, known bool) string {
	if known {
		return m.goodbye + " " + name + "."
	}
	return m.goodbye + "."
}
